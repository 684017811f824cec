// Package validation provides Laravel-compatible input validation for
// scalar form fields and file uploads.
//
// # Scalar fields
//
// The scalar Validator mirrors Laravel's Validator facade and its
// pipe-separated rule syntax:
//
//	v := validation.Make(map[string]string{
//	    "name":  "Alice",
//	    "email": "alice@example.com",
//	}, validation.Rules{
//	    "name":  "required|min:2|max:100",
//	    "email": "required|email",
//	})
//
//	if v.Fails() {
//	    // v.Errors() returns *Errors with Bag map[string][]string
//	    // JSON: {"errors": {"field": ["message1", "message2"]}}
//	}
//
// Supported scalar rules: required, string, numeric, integer, boolean,
// email, url, min:n, max:n, size:n, between:lo,hi, in:a,b, not_in:a,b,
// confirmed, same:other, different:other, alpha, alpha_num, alpha_dash,
// regex:pattern, nullable, sometimes, gt/gte/lt/lte:n.
//
// # File uploads
//
// File fields validate against the per-request upload table instead of a
// string value. Four rules ship registered under fixed names:
//
//	isUploadedFile    — an upload occurred (any outcome except "no file")
//	uploadedFileSize  — byte size within a unit-scaled inclusive range
//	allowedFileType   — MIME type member of an exact allow-list
//	dimensions        — decoded image width/height match expected values
//
// Usage:
//
//	uploads, _ := req.Uploads(limits)
//	defer uploads.Release()
//
//	fv := validation.MakeFiles(uploads, validation.FileRules{
//	    "avatar": {
//	        validation.UploadedFile(),
//	        validation.FileSize(0.1, 2, "mb"),
//	        validation.MimeType("image/png", "image/jpeg"),
//	        validation.Dimensions(validation.Exactly(128), validation.Exactly(128)),
//	    },
//	})
//
//	if err := fv.Validate(); err != nil {
//	    // *ConfigError: the rule declaration itself is broken.
//	    // Abort the request; this is not user input's fault.
//	}
//	if fv.Fails() {
//	    res.ValidationError(fv.Errors())
//	}
//
// Two failure classes are kept strictly apart: malformed rule options
// (bad size bounds, unknown unit) surface as *ConfigError from Validate,
// while user-facing failures accumulate in the same MessageBag the scalar
// validator uses.
//
// An absent descriptor always passes — it means "no change intended" on
// optional-update forms. So does any rule with SkipEmpty set or Required
// unset, and any rule running outside an HTTP request unless it opted in
// through ValidateInCli.
//
// The size rule's unit table accepts full names and abbreviations,
// case-insensitively: bytes/b, kb/kilobytes, mb/megabytes, gb/gigabytes,
// tb/terabyte, pb/petabyte — each a successive power of 1024.
//
// Custom file rules register through ExtendFile, like Validator::extend:
//
//	validation.ExtendFile("virusFree", func(ctx *validation.FileContext, opts *validation.FileOptions) (bool, error) {
//	    d, ok := ctx.Descriptor()
//	    if !ok {
//	        return true, nil
//	    }
//	    return scanner.Clean(d.TmpPath), nil
//	})
package validation
