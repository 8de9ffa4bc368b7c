// Package pipeline chains tagged functions into a linear sequence of steps.
//
// Every function added to a pipeline must carry a category tag, and the tag must
// match the category the step is declared with. Running the pipeline calls the
// steps in the order they were added: the first step receives only its own
// arguments, every later step receives the previous step's return value as its
// first argument, followed by its own arguments.
//
// The pipeline stops on the first error. There is no branching, no parallelism
// and no recovery across steps: it is a convenient way to replay a workflow, not a
// scheduling engine.
//
// Functions may take a context.Context as their first parameter, in which case the
// context given to Execute is passed in front of everything else. Accepted results
// are none, a single value, a single error, or a value followed by an error.
package pipeline
