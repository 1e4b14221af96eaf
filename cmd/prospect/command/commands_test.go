package command

import (
	"os"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/prospect"
	"github.com/pixil98/go-prospect/internal/recorder"
)

func TestListCmd(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))

	output, err := executeCommand(NewRootCmd("test"), "", "list", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, exp := range []string{
		"Characters (1):",
		testPlayer + "-0",
		"Ash",
		"(1.0, 2.0, 3.0)",
		"warning: unowned player state PlayerStateRecorderComponent[4] for 999-0",
	} {
		if !strings.Contains(output, exp) {
			t.Errorf("output missing %q:\n%s", exp, output)
		}
	}
}

func TestListCmd_Format(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))

	output, err := executeCommand(NewRootCmd("test"), "", "list", path, "--format", "{{ .PlayerID }}/{{ .Slot }}/{{ .Name | upper }}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, testPlayer+"/0/ASH") {
		t.Errorf("unexpected output:\n%s", output)
	}

	_, err = executeCommand(NewRootCmd("test"), "", "list", path, "--format", "{{ .Name")
	testutil.AssertErrorContains(t, err, "parsing template")
}

func TestCleanupThenRemove(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))

	_, err := executeCommand(NewRootCmd("test"), "", "--yes", "cleanup", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "after cleanup", len(loadTypes(t, path)), 5)

	_, err = executeCommand(NewRootCmd("test"), "", "--yes", "remove", path, testPlayer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	types := loadTypes(t, path)
	testutil.AssertEqual(t, "after remove", len(types), 1)
	testutil.AssertEqual(t, "history kept", types[0], recorder.TypePlayerHistory)

	testutil.AssertEqual(t, "backups", len(backups(t, path)), 2)
}

func TestRemoveCmd(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))

	output, err := executeCommand(NewRootCmd("test"), "y\n", "remove", path, testPlayer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Removing 1 character(s): "+testPlayer+"-0 (Ash)") {
		t.Errorf("unexpected output:\n%s", output)
	}

	types := loadTypes(t, path)
	testutil.AssertEqual(t, "remaining", len(types), 2)
	testutil.AssertEqual(t, "orphan kept", types[0], recorder.TypePlayerState)

	p, err := prospect.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	members := p.Members()
	testutil.AssertEqual(t, "header members", len(members), 1)
	testutil.AssertEqual(t, "member left", members[0].UserID, "999")

	blobMembers, err := p.BlobMembers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "blob members", len(blobMembers), 0)
}

func TestRemoveCmd_Declined(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := executeCommand(NewRootCmd("test"), "n\n", "remove", path, testPlayer+"-0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Aborted") {
		t.Errorf("unexpected output:\n%s", output)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "file untouched", string(after), string(before))
	testutil.AssertEqual(t, "no backup", len(backups(t, path)), 0)
}

func TestRemoveCmd_Errors(t *testing.T) {
	tests := map[string]struct {
		args   []string
		expErr string
	}{
		"bad id": {
			args:   []string{"--yes", "remove", "SAVE", testPlayer + "-x"},
			expErr: "invalid character id",
		},
		"missing save": {
			args:   []string{"--yes", "remove", "/nonexistent/save.json", testPlayer},
			expErr: "reading prospect",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeSave(t, scenarioRecords(t))
			for i, a := range tt.args {
				if a == "SAVE" {
					tt.args[i] = path
				}
			}

			_, err := executeCommand(NewRootCmd("test"), "", tt.args...)
			testutil.AssertErrorContains(t, err, tt.expErr)
			testutil.AssertEqual(t, "no backup", len(backups(t, path)), 0)
		})
	}
}

func TestRemoveCmd_NoMatch(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))

	output, err := executeCommand(NewRootCmd("test"), "", "--yes", "remove", path, "12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Nothing to change.") {
		t.Errorf("unexpected output:\n%s", output)
	}
	testutil.AssertEqual(t, "no backup", len(backups(t, path)), 0)
}

func TestSetCmd(t *testing.T) {
	tests := map[string]struct {
		key    string
		value  string
		check  func(p *prospect.Prospect) string
		exp    string
		expErr string
	}{
		"difficulty": {
			key:   "difficulty",
			value: "hard",
			check: (*prospect.Prospect).Difficulty,
			exp:   "Hard",
		},
		"privacy": {
			key:   "privacy",
			value: "public",
			check: (*prospect.Prospect).Privacy,
			exp:   "Public",
		},
		"name": {
			key:   "name",
			value: "Elysium",
			check: (*prospect.Prospect).Name,
			exp:   "Elysium",
		},
		"hardcore": {
			key:   "hardcore",
			value: "true",
			check: func(p *prospect.Prospect) string { return settings["hardcore"].get(p) },
			exp:   "true",
		},
		"dropzone": {
			key:   "dropzone",
			value: "3",
			check: func(p *prospect.Prospect) string { return settings["dropzone"].get(p) },
			exp:   "3",
		},
		"bad privacy": {
			key:    "privacy",
			value:  "bogus",
			expErr: `privacy "bogus"`,
		},
		"bad hardcore": {
			key:    "hardcore",
			value:  "sometimes",
			expErr: "is not a boolean",
		},
		"negative dropzone": {
			key:    "dropzone",
			value:  "-2",
			expErr: "is negative",
		},
		"unknown setting": {
			key:    "weather",
			value:  "rain",
			expErr: `unknown setting "weather"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeSave(t, scenarioRecords(t))

			_, err := executeCommand(NewRootCmd("test"), "", "--yes", "--no-backup", "set", path, tt.key, tt.value)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				p, loadErr := prospect.Load(path)
				if loadErr != nil {
					t.Fatalf("unexpected error: %v", loadErr)
				}
				testutil.AssertEqual(t, "privacy untouched", p.Privacy(), "Private")
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			p, err := prospect.Load(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "value", tt.check(p), tt.exp)
			testutil.AssertEqual(t, "no backup", len(backups(t, path)), 0)
			testutil.AssertEqual(t, "recorders kept", len(loadTypes(t, path)), 6)
		})
	}
}

func TestInfoCmd(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))

	output, err := executeCommand(NewRootCmd("test"), "", "info", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, exp := range []string{
		"Olympus", "Private", "Medium", "Members (2):", "Ghost", "12,000",
		"Save data members: 1",
		"warning: member 999-0 is listed in the header but not in the save data",
	} {
		if !strings.Contains(output, exp) {
			t.Errorf("output missing %q:\n%s", exp, output)
		}
	}
}

func structureRecords(t *testing.T) []*recorder.Record {
	return []*recorder.Record{
		mustRecord(t, recorder.TypePrebuiltStructure,
			property.NewInt(recorder.FieldActorID, 1),
			property.NewString(recorder.FieldStructureName, "Cabin"),
			property.NewIntArray(recorder.FieldRelevantActors, 55, 60),
		),
		mustRecord(t, recorder.TypeRocket, property.NewInt(recorder.FieldActorID, 55)),
		mustRecord(t, recorder.TypeRocket, property.NewInt(recorder.FieldActorID, 55)),
		mustRecord(t, "DeployableRecorderComponent", property.NewInt(recorder.FieldActorID, 60)),
	}
}

func TestPrebuiltCmd(t *testing.T) {
	path := writeSave(t, structureRecords(t))

	output, err := executeCommand(NewRootCmd("test"), "", "prebuilt", "list", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Prebuilt structures (1):") || !strings.Contains(output, "Cabin") || !strings.Contains(output, " B") {
		t.Errorf("unexpected output:\n%s", output)
	}

	_, err = executeCommand(NewRootCmd("test"), "", "--yes", "prebuilt", "remove", path, "3")
	testutil.AssertErrorContains(t, err, "invalid structure ordinal: 3")

	_, err = executeCommand(NewRootCmd("test"), "", "--yes", "prebuilt", "remove", path, "first")
	testutil.AssertErrorContains(t, err, "invalid structure ordinal")

	output, err = executeCommand(NewRootCmd("test"), "", "--yes", "prebuilt", "remove", path, "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Skipped 1 actor(s)") {
		t.Errorf("unexpected output:\n%s", output)
	}

	types := loadTypes(t, path)
	testutil.AssertEqual(t, "remaining", len(types), 2)
	testutil.AssertEqual(t, "first duplicate kept", types[0], recorder.TypeRocket)
	testutil.AssertEqual(t, "second duplicate kept", types[1], recorder.TypeRocket)
}

func TestPrebuiltClearCmd(t *testing.T) {
	path := writeSave(t, structureRecords(t))

	_, err := executeCommand(NewRootCmd("test"), "", "--yes", "prebuilt", "clear", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "remaining", len(loadTypes(t, path)), 2)

	output, err := executeCommand(NewRootCmd("test"), "", "--yes", "prebuilt", "clear", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Nothing to change.") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestProspectsCmd(t *testing.T) {
	path := writeSave(t, scenarioRecords(t))
	dir := strings.TrimSuffix(path, "Olympus.json")
	if err := os.WriteFile(dir+"notes.json", []byte(`{"hello": "world"}`), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := executeCommand(NewRootCmd("test"), "", "prospects", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Olympus") || strings.Contains(output, "notes.json") {
		t.Errorf("unexpected output:\n%s", output)
	}

	_, err = executeCommand(NewRootCmd("test"), "", "prospects")
	testutil.AssertErrorContains(t, err, "save_dir is not configured")
}
