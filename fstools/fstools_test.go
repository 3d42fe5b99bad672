/*
  fstools_test.go
  Description: Unit tests for the filesystem check
  -----------------------------------------------------------------------------

  Started on  <Fri Jul 31 2026 Carlos Linares Lopez>
  -----------------------------------------------------------------------------

  $Id::                                                                      $
  $Date::                                                                    $
  $Revision::                                                                $
  -----------------------------------------------------------------------------

  Made by Carlos Linares Lopez
  Login   <clinares@atlas>
*/

package fstools

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsRegularFileTrueForAPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tbl")
	if err := os.WriteFile(path, []byte("a:b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ok, info := IsRegularFile(path)
	if !ok {
		t.Fatal("expected a plain file to be reported regular")
	}
	if info.Size() != 4 {
		t.Fatalf("got size %d, want 4", info.Size())
	}
}

func TestIsRegularFileFalseForADirectory(t *testing.T) {
	ok, _ := IsRegularFile(t.TempDir())
	if ok {
		t.Fatal("expected a directory not to be reported regular")
	}
}

func TestIsRegularFileFalseForAMissingPath(t *testing.T) {
	ok, info := IsRegularFile(filepath.Join(t.TempDir(), "does-not-exist"))
	if ok || info != nil {
		t.Fatal("expected a missing path not to be reported regular")
	}
}
