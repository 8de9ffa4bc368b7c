package flowpilot

import "github.com/askiada/go-flowpilot/pkg/registry"

// Base category names.
const (
	DataLoaderCategory      = "data_loader"
	PreprocessorCategory    = "preprocessor"
	ModelTrainingCategory   = "model_training"
	DataVizCategory         = "data_viz"
	DataReaderCategory      = "data_reader"
	DataTransformerCategory = "data_transformer"
	DataWriterCategory      = "data_writer"
	TestCategory            = "test"
)

// ShortcutFunc registers functions in the category it was looked up for.
type ShortcutFunc func(comment string) registry.Decorator

// Shortcut returns the registration handle of a category. Shortcuts follow the
// registry categories, including the ones created by Custom.
func (fp *FlowPilot) Shortcut(category string) (ShortcutFunc, bool) {
	if !fp.registry.IsValidCategory(category) {
		return nil, false
	}

	return func(comment string) registry.Decorator {
		return fp.registry.RegisterFunction(category, comment)
	}, true
}

// DataLoader tags functions as data loaders.
func (fp *FlowPilot) DataLoader(comment string) registry.Decorator {
	return fp.RegisterFunction(DataLoaderCategory, comment)
}

// Preprocessor tags functions as preprocessors.
func (fp *FlowPilot) Preprocessor(comment string) registry.Decorator {
	return fp.RegisterFunction(PreprocessorCategory, comment)
}

// ModelTraining tags functions as model training functions.
func (fp *FlowPilot) ModelTraining(comment string) registry.Decorator {
	return fp.RegisterFunction(ModelTrainingCategory, comment)
}

// DataViz tags functions as data visualisation functions.
func (fp *FlowPilot) DataViz(comment string) registry.Decorator {
	return fp.RegisterFunction(DataVizCategory, comment)
}

// DataReader tags functions as data readers.
func (fp *FlowPilot) DataReader(comment string) registry.Decorator {
	return fp.RegisterFunction(DataReaderCategory, comment)
}

// DataTransformer tags functions as data transformers.
func (fp *FlowPilot) DataTransformer(comment string) registry.Decorator {
	return fp.RegisterFunction(DataTransformerCategory, comment)
}

// DataWriter tags functions as data writers.
func (fp *FlowPilot) DataWriter(comment string) registry.Decorator {
	return fp.RegisterFunction(DataWriterCategory, comment)
}

// Test tags functions as test functions.
func (fp *FlowPilot) Test(comment string) registry.Decorator {
	return fp.RegisterFunction(TestCategory, comment)
}
