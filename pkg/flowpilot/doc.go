// Package flowpilot is the entry point of a FlowPilot project.
//
// A FlowPilot owns a project directory and a registry of categorised functions.
// Functions are tagged through category shortcuts:
//
//	fp, err := flowpilot.New("churn")
//	if err != nil {
//		return err
//	}
//
//	load, err := registry.Tag(fp.DataLoader("loads csv"), loadCSV)
//
// Each category can then be written to <project>/<category>.py, and tagged
// functions can be chained with a pipeline built by NewPipeline.
package flowpilot
