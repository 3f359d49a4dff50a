package testutils

import (
	"os"
	"path"

	"github.com/pmezard/go-difflib/difflib"
)

// CheckGoldenFile compares actual against the golden file's content and
// reports a unified diff on mismatch. A missing golden file is created from
// actual.
func CheckGoldenFile(t TestingT, actual []byte, expectFilePath string) {
	t.Helper()

	expect, err := os.ReadFile(expectFilePath)
	if os.IsNotExist(err) {
		err = os.MkdirAll(path.Dir(expectFilePath), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(expectFilePath, actual, 0444)
		if err != nil {
			t.Fatal(err)
		}
		return
	} else if err != nil {
		t.Error(err)
		return
	}

	CheckDiff(t, string(expect), string(actual))
}

// CheckDiff reports a unified diff when expect and actual differ.
func CheckDiff(t TestingT, expect, actual string) {
	t.Helper()

	if expect == actual {
		return
	}

	diff := difflib.UnifiedDiff{
		A:       difflib.SplitLines(expect),
		B:       difflib.SplitLines(actual),
		Context: 5,
	}
	d, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		t.Fatal(err)
	}
	t.Error(d)
}
