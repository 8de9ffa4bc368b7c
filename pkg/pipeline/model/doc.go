// Package model provides the data structures shared by the pipeline package and its
// features. It defines the read-only description of a pipeline step and the hooks a
// pipeline feature implements to follow the pipeline lifecycle.
package model
