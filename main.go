package main

import (
	"net/http"

	"github.com/km-arc/go-uploads/framework/app"
	gohttp "github.com/km-arc/go-uploads/framework/http"
	"github.com/km-arc/go-uploads/framework/http/validation"
	"github.com/km-arc/go-uploads/framework/routing"
)

func main() {
	application := app.New() // loads .env automatically
	application.Boot()

	r := application.Router()
	limits := application.UploadLimits()
	runCtx := application.ValidationContext()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		res.Success(map[string]any{"message": "Welcome to go-uploads!"})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {

		// POST /api/v1/profile — mixed scalar + file validation
		api.Post("/profile", func(w http.ResponseWriter, req *http.Request) {
			request := gohttp.NewRequest(req)
			res := gohttp.NewResponse(w)

			uploads, err := request.Uploads(limits)
			if err != nil {
				res.PayloadTooLarge()
				return
			}
			defer uploads.Release()

			// 1. Scalar fields — Laravel-style rules
			v := validation.Make(request.All(), validation.Rules{
				"name":  "required|min:2|max:100",
				"email": "required|email",
			})

			// 2. File fields — named upload rules
			fv := validation.MakeFiles(uploads, validation.FileRules{
				"avatar": {
					validation.UploadedFile(),
					validation.FileSize(0, 2, "mb"),
					validation.MimeType("image/png", "image/jpeg"),
					validation.Dimensions(validation.Exactly(128), validation.Exactly(128)),
				},
			}).InContext(runCtx)
			if err := fv.Validate(); err != nil {
				// Misconfigured rules are our bug, not the client's.
				res.ServerError()
				return
			}

			if v.Fails() || fv.Fails() {
				errs := v.Errors()
				errs.Merge(fv.Errors())
				res.ValidationError(errs)
				return
			}

			d, _ := uploads.Get("avatar")
			res.Created(map[string]any{
				"name":   request.Input("name"),
				"email":  request.Input("email"),
				"avatar": map[string]any{"size": d.Size, "type": d.Type},
			})
		})

		// POST /api/v1/documents — optional-update semantics
		api.Post("/documents", func(w http.ResponseWriter, req *http.Request) {
			request := gohttp.NewRequest(req)
			res := gohttp.NewResponse(w)

			uploads, err := request.Uploads(limits)
			if err != nil {
				res.PayloadTooLarge()
				return
			}
			defer uploads.Release()

			attachment := validation.MimeType("application/pdf")
			attachment.Options.SkipEmpty = true // absent file means "keep the old one"

			fv := validation.MakeFiles(uploads, validation.FileRules{
				"attachment": {attachment, validation.FileSize(0, 10, "mb")},
			})
			if err := fv.Validate(); err != nil {
				res.ServerError()
				return
			}
			if fv.Fails() {
				res.ValidationError(fv.Errors())
				return
			}

			res.Success(map[string]any{"updated": uploads.Has("attachment")})
		})
	})

	application.Run()
}
