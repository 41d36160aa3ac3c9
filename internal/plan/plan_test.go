package plan

import (
	"reflect"
	"testing"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/blackwell-systems/brew-update-helper/internal/prefs"
)

func outdatedFormula(name, current, available string) brew.OutdatedPackage {
	return brew.OutdatedPackage{Name: name, Kind: brew.Formula, CurrentVersion: current, AvailableVersion: available}
}

func outdatedCask(name, current, available string) brew.OutdatedPackage {
	return brew.OutdatedPackage{Name: name, Kind: brew.Cask, CurrentVersion: current, AvailableVersion: available}
}

func TestBuild(t *testing.T) {
	doc, _ := prefs.Parse(`## Formulae

- [x] git
- [ ] node
- [x] wget

## Casks

- [x] docker
- [ ] firefox
`)

	tests := []struct {
		name     string
		outdated []brew.OutdatedPackage
		want     []string
	}{
		{
			name:     "enabled outdated formula is planned, disabled is not",
			outdated: []brew.OutdatedPackage{outdatedFormula("git", "2.40.0", "2.41.0"), outdatedFormula("node", "20.1.0", "20.2.0")},
			want:     []string{"git"},
		},
		{
			name:     "outdated package missing from settings is ignored",
			outdated: []brew.OutdatedPackage{outdatedFormula("python", "3.11", "3.12")},
			want:     nil,
		},
		{
			name:     "kind must match",
			outdated: []brew.OutdatedPackage{outdatedCask("git", "1", "2"), outdatedFormula("docker", "1", "2")},
			want:     nil,
		},
		{
			name: "order follows outdated list",
			outdated: []brew.OutdatedPackage{
				outdatedCask("docker", "4.18.0", "4.19.0"),
				outdatedFormula("wget", "1.21", "1.24"),
				outdatedFormula("git", "2.40.0", "2.41.0"),
			},
			want: []string{"docker", "wget", "git"},
		},
		{
			name:     "nothing outdated",
			outdated: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := Build(tt.outdated, doc)
			var got []string
			for _, c := range candidates {
				if !c.Selected {
					t.Errorf("candidate %s should start selected", c.Outdated.Name)
				}
				got = append(got, c.Outdated.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Build() names = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildKeepsVersions(t *testing.T) {
	doc, _ := prefs.Parse("- [x] git\n")
	pkg := outdatedFormula("git", "2.40.0", "2.41.0")

	candidates := Build([]brew.OutdatedPackage{pkg}, doc)
	if len(candidates) != 1 || candidates[0].Outdated != pkg {
		t.Fatalf("Build() = %+v", candidates)
	}
}

func TestBuildEmptyDocument(t *testing.T) {
	if got := Build([]brew.OutdatedPackage{outdatedFormula("git", "1", "2")}, &prefs.Document{}); len(got) != 0 {
		t.Errorf("Build() with empty document = %+v, want none", got)
	}
}

func TestSelectedPackages(t *testing.T) {
	candidates := []Candidate{
		{Outdated: outdatedFormula("git", "1", "2"), Selected: true},
		{Outdated: outdatedFormula("node", "1", "2"), Selected: false},
		{Outdated: outdatedCask("docker", "1", "2"), Selected: true},
	}

	got := SelectedPackages(candidates)
	if len(got) != 2 || got[0].Name != "git" || got[1].Name != "docker" {
		t.Errorf("SelectedPackages() = %+v", got)
	}
}
