/*
  fstools.go
  Description: the filesystem check the CLI needs before trusting FILE
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

// Package fstools provides the one filesystem check the CLI needs before it
// trusts FILE enough to hand its contents to the codec: that the path names
// a regular file, not a directory, device, or other special entry.
package fstools

import "os"

// IsRegularFile reports whether path names a regular file (no mode bits
// set, per os.FileMode.IsRegular), returning its os.FileInfo when it does.
// A path that does not exist, or cannot be stat'd, reports false.
func IsRegularFile(path string) (bool, os.FileInfo) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, nil
	}
	return info.Mode().IsRegular(), info
}
