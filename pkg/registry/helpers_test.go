package registry_test

func load() int { return 42 }

func loadCSV(path string) ([]string, error) { return []string{path}, nil }

func loadJSON(path string) ([]string, error) { return []string{path}, nil }

func clean(rows []string) []string { return rows }

//go:noinline
func reader(path string) func() string {
	return func() string { return path }
}

type csvFile struct {
	path string
}

func (f csvFile) read() string { return f.path }
