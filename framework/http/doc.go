// Package http wraps net/http's request and response with Laravel-style
// helpers: body binding, input accessors, JSON response envelopes and
// file-upload intake.
//
// # Request
//
//	request := gohttp.NewRequest(r)
//	name := request.Input("name", "fallback")
//
//	uploads, err := request.Uploads(upload.Limits{MaxFileBytes: 2 << 20})
//	defer uploads.Release()
//
// Uploads() is the bridge into validation: it materializes every file
// field as an upload.Descriptor, which validation.MakeFiles consumes.
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(payload)                  // 200 {"data": ...}
//	res.ValidationError(v.Errors())       // 422 {"errors": {...}}
package http
