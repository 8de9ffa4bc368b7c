// Package registry keeps track of functions tagged with a workflow category.
//
// A Registry maps category names to the functions registered under them. Tagging a
// function records its category in a side table keyed by the function's entry
// point, so the callable itself is never wrapped or modified: calling a tagged
// function behaves exactly like calling the untagged one.
//
// Every category can be written out as a standalone script. The script starts
// with the import statements scraped from the project tree, each guarded so that a
// missing module only prints a message, followed by the source of every function
// in the category with its tagging decorator removed. Functions registered without
// source get a placeholder definition built from their signature.
package registry
