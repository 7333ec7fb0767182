// Package link manages the per-directory project link descriptor.
//
// A directory is linked when it contains a .envdock.json file of the form
//
//	{
//	  "projectId": "65f0c9...",
//	  "env": "dev"
//	}
//
// The descriptor is validated against a JSON schema on load: a file that is
// not JSON, or has no non-empty projectId, is reported as ErrCorruptLink.
// The env attribute is not validated here; the environment resolver does
// that so that a bad default surfaces as an invalid-environment error.
//
// Unknown attributes are preserved across UpdateField, and every write
// replaces the whole file through a temp file and rename.
package link
