package schema

// RuleDirectivesSDL declares the builtin rule directives. BuildFromSDL
// injects it ahead of user sources so occurrences validate against these
// definitions.
const RuleDirectivesSDL = `
"String-targeted validation rule."
directive @stringRule(
  format: String
  maxLength: Int
  minLength: Int
  startsWith: String
  endsWith: String
  includes: String
  regex: String
  flags: String
  oneOf: [String!]
) repeatable on ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION

"Numeric-targeted validation rule."
directive @numberRule(
  multipleOf: Float
  max: Float
  min: Float
  exclusiveMax: Float
  exclusiveMin: Float
  oneOf: [Float!]
) repeatable on ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION

"List-targeted validation rule. depth selects the nesting level it applies to (0 = outermost)."
directive @listRule(
  maxItems: Int
  minItems: Int
  uniqueItems: Boolean
  depth: Int
) repeatable on ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION

"Whole-object validation rule over an input object value."
directive @objectRule(
  equalFields: [String!]
  nonEqualFields: [String!]
) repeatable on ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION | INPUT_OBJECT
`
