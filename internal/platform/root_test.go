package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindSettings(t *testing.T) {
	// baseDir/
	//   project/ (.autosave.toml)
	//     src/
	//       nested/
	//   empty/

	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	nestedDir := filepath.Join(projectDir, "src", "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}

	marker := filepath.Join(projectDir, ".autosave.toml")
	if err := os.WriteFile(marker, []byte("use_regex = false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// A directory with a settings name is not a settings file.
	if err := os.Mkdir(filepath.Join(nestedDir, ".autosave.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		want      string
		wantErr   bool
	}{
		{"Start at Project", projectDir, marker, false},
		{"Start Nested Deeply", nestedDir, marker, false},
		{"No Settings Found", emptyDir, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindSettings(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if filepath.Clean(got) != filepath.Clean(tt.want) {
				t.Errorf("FindSettings() = %v, want %v", got, tt.want)
			}
		})
	}
}
