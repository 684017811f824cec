package validation

import (
	"fmt"
	"image"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/km-arc/go-uploads/framework/http/upload"

	// Image formats the dimensions rule understands. Registration is all
	// that's needed; image.DecodeConfig picks the right codec by magic bytes.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Built-in file rule names. These are the registry keys the rules are
// registered under; FileRule.Name carries one of them (or a custom name
// added via ExtendFile).
const (
	RuleUploadedFile = "isUploadedFile"
	RuleFileSize     = "uploadedFileSize"
	RuleFileType     = "allowedFileType"
	RuleDimensions   = "dimensions"
)

// ── Run context ──────────────────────────────────────────────────────────────

// RunContext tells file rules whether they execute inside an HTTP request.
// Outside of one (console commands, queue workers) there is no upload table,
// so rules pass unless explicitly told to ValidateInCli.
type RunContext int

const (
	Web RunContext = iota
	CLI
)

// ── Configuration errors ─────────────────────────────────────────────────────

// ConfigError reports malformed rule options. It is a fatal setup error —
// the model declaring the rule is broken — and is kept strictly apart from
// boolean validation failures, which land in the error bag.
type ConfigError struct {
	Rule   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Rule, e.Reason)
}

// ── Options ──────────────────────────────────────────────────────────────────

// FileOptions is the typed per-invocation configuration of a file rule.
// It replaces the dynamic option arrays PHP validators merge at call time;
// every field has an explicit zero-value meaning.
type FileOptions struct {
	// SkipEmpty makes the rule pass unconditionally — "no change intended"
	// semantics for optional-update forms.
	SkipEmpty bool

	// Required enables the check at all. The rule constructors default it
	// to true; with Required false the rule always passes (dimensions is
	// the one exception, see its docs).
	Required bool

	// ValidateInCli runs the check even outside an HTTP request.
	ValidateInCli bool

	// In configures uploadedFileSize: [lower, upper, unit]. Bounds are
	// numeric, the unit is a string from the size-unit table.
	In []any

	// Allowed configures allowedFileType: the exact MIME strings accepted.
	Allowed []string

	// Width / Height configure dimensions. A nil dimension is not checked.
	Width  *int
	Height *int
}

// Exactly is a small helper for the dimensions options:
//
//	validation.Dimensions(validation.Exactly(45), nil) // width only
func Exactly(n int) *int { return &n }

// FileRule is one named rule invocation against one field.
type FileRule struct {
	Name    string
	Options FileOptions

	// Message overrides the default failure message when set.
	Message string
}

// FileRules maps field name → the rule invocations to run against it.
type FileRules map[string][]FileRule

// ── Rule constructors ────────────────────────────────────────────────────────

// UploadedFile checks that an upload occurred for the field.
func UploadedFile() FileRule {
	return FileRule{Name: RuleUploadedFile, Options: FileOptions{Required: true}}
}

// FileSize checks the uploaded byte size against [lower, upper] scaled by
// unit ("kb", "mb", "megabytes", ...). Bounds are inclusive.
func FileSize(lower, upper float64, unit string) FileRule {
	return FileRule{
		Name:    RuleFileSize,
		Options: FileOptions{Required: true, In: []any{lower, upper, unit}},
	}
}

// MimeType checks the uploaded MIME type against an allow-list of exact
// strings.
func MimeType(allowed ...string) FileRule {
	return FileRule{
		Name:    RuleFileType,
		Options: FileOptions{Required: true, Allowed: allowed},
	}
}

// Dimensions checks decoded image width/height. Pass nil to leave a
// dimension unchecked.
func Dimensions(width, height *int) FileRule {
	return FileRule{
		Name:    RuleDimensions,
		Options: FileOptions{Required: true, Width: width, Height: height},
	}
}

// ── Registry ─────────────────────────────────────────────────────────────────

// FileContext is what the registry hands a rule: the field under test, the
// per-request upload table and the execution context. Rules read it, never
// mutate shared state.
type FileContext struct {
	Field      string
	Uploads    upload.Map
	RunContext RunContext

	// message set by the rule to override the default failure text.
	message string
}

// Descriptor returns the upload descriptor for the field under test.
func (ctx *FileContext) Descriptor() (*upload.Descriptor, bool) {
	return ctx.Uploads.Get(ctx.Field)
}

// Fail records a rule-specific failure message and returns false, so rules
// can write `return ctx.Fail("..."), nil`.
func (ctx *FileContext) Fail(msg string) bool {
	ctx.message = msg
	return false
}

// skip reports the shared short-circuits: skip-empty, not required, or a
// non-request context without ValidateInCli.
func (ctx *FileContext) skip(opts *FileOptions) bool {
	if opts.SkipEmpty || !opts.Required {
		return true
	}
	if ctx.RunContext == CLI && !opts.ValidateInCli {
		return true
	}
	return false
}

// FileRuleFunc is the registry contract. The boolean is the validation
// verdict; a non-nil error is always a *ConfigError and aborts validation.
type FileRuleFunc func(ctx *FileContext, opts *FileOptions) (bool, error)

var (
	fileRulesMu sync.RWMutex
	fileRules   = map[string]FileRuleFunc{
		RuleUploadedFile: isUploadedFile,
		RuleFileSize:     uploadedFileSize,
		RuleFileType:     allowedFileType,
		RuleDimensions:   dimensions,
	}
)

// ExtendFile registers a custom file rule under name — mirrors
// Validator::extend. Registering over an existing name is an error.
func ExtendFile(name string, fn FileRuleFunc) error {
	if name == "" || fn == nil {
		return &ConfigError{Rule: name, Reason: "rule name and func are required"}
	}
	fileRulesMu.Lock()
	defer fileRulesMu.Unlock()
	if _, exists := fileRules[name]; exists {
		return &ConfigError{Rule: name, Reason: "rule already registered"}
	}
	fileRules[name] = fn
	return nil
}

func lookupFileRule(name string) (FileRuleFunc, bool) {
	fileRulesMu.RLock()
	defer fileRulesMu.RUnlock()
	fn, ok := fileRules[name]
	return fn, ok
}

// ── FileValidator ────────────────────────────────────────────────────────────

// FileValidator runs file rules against a per-request upload table. Unlike
// the scalar Validator it separates two failure classes: Validate returns a
// *ConfigError for malformed rule options (abort the request, fix the
// model), while ordinary failures accumulate in the error bag.
type FileValidator struct {
	uploads upload.Map
	rules   FileRules
	runCtx  RunContext
	errors  *Errors
}

// MakeFiles creates a FileValidator — the file-field counterpart of Make.
func MakeFiles(uploads upload.Map, rules FileRules) *FileValidator {
	return &FileValidator{
		uploads: uploads,
		rules:   rules,
		runCtx:  Web,
		errors:  &Errors{},
	}
}

// InContext sets the execution context. The default is Web.
func (v *FileValidator) InContext(rc RunContext) *FileValidator {
	v.runCtx = rc
	return v
}

// Validate runs every rule. Rules for a field stop at its first failure.
func (v *FileValidator) Validate() error {
	for field, rules := range v.rules {
		for _, r := range rules {
			fn, ok := lookupFileRule(r.Name)
			if !ok {
				return &ConfigError{Rule: r.Name, Reason: "unknown file rule"}
			}

			ctx := &FileContext{Field: field, Uploads: v.uploads, RunContext: v.runCtx}
			valid, err := fn(ctx, &r.Options)
			if err != nil {
				return err
			}
			if !valid {
				v.errors.add(field, failureMessage(&r, ctx))
				break
			}
		}
	}
	return nil
}

// Fails reports whether Validate recorded any failures.
func (v *FileValidator) Fails() bool { return v.errors.Has() }

// Passes reports whether Validate recorded no failures.
func (v *FileValidator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *FileValidator) Errors() *Errors { return v.errors }

func failureMessage(r *FileRule, ctx *FileContext) string {
	if r.Message != "" {
		return r.Message
	}
	if ctx.message != "" {
		return ctx.message
	}

	field := ctx.Field
	switch r.Name {
	case RuleUploadedFile:
		return fmt.Sprintf("The %s must be an uploaded file.", field)
	case RuleFileSize:
		// Options already validated by the rule; ignore the error here.
		lower, upper, _ := sizeBounds(r.Options.In)
		return fmt.Sprintf("The %s must be between %s and %s.",
			field, humanize.IBytes(uint64(lower)), humanize.IBytes(uint64(upper)))
	case RuleFileType:
		return fmt.Sprintf("The %s must be a file of type: %s.",
			field, strings.Join(r.Options.Allowed, ", "))
	case RuleDimensions:
		return fmt.Sprintf("The %s has invalid image dimensions.", field)
	}
	return fmt.Sprintf("The %s is invalid.", field)
}

// ── isUploadedFile ───────────────────────────────────────────────────────────

// isUploadedFile checks only that an upload occurred. Any error code other
// than NoFile still counts as "present" — rejecting broken uploads is the
// other rules' job.
func isUploadedFile(ctx *FileContext, opts *FileOptions) (bool, error) {
	if ctx.skip(opts) {
		return true, nil
	}
	d, ok := ctx.Descriptor()
	if !ok {
		// Field unset means "no change intended".
		return true, nil
	}
	return d.Uploaded(), nil
}

// ── uploadedFileSize ─────────────────────────────────────────────────────────

// Size unit table: name (or abbreviation) → power of 1024.
var fileSizeUnits = map[string]int{
	"":          0,
	"b":         0,
	"bytes":     0,
	"kb":        1,
	"kilobytes": 1,
	"mb":        2,
	"megabytes": 2,
	"gb":        3,
	"gigabytes": 3,
	"tb":        4,
	"terabyte":  4,
	"pb":        5,
	"petabyte":  5,
}

// sizeBounds resolves In ([lower, upper, unit]) to inclusive byte bounds.
func sizeBounds(in []any) (int64, int64, error) {
	if len(in) == 0 {
		return 0, 0, &ConfigError{Rule: RuleFileSize, Reason: "must specify upper and lower bound"}
	}

	// The unit is always the last element.
	unit, ok := in[len(in)-1].(string)
	if !ok {
		return 0, 0, &ConfigError{Rule: RuleFileSize, Reason: "invalid unit"}
	}
	bounds := in[:len(in)-1]
	if len(bounds) != 2 {
		return 0, 0, &ConfigError{Rule: RuleFileSize, Reason: "must specify upper and lower bound"}
	}

	power, ok := fileSizeUnits[strings.ToLower(unit)]
	if !ok {
		return 0, 0, &ConfigError{Rule: RuleFileSize, Reason: "invalid unit"}
	}

	lower, ok := toFloat(bounds[0])
	if !ok {
		return 0, 0, &ConfigError{Rule: RuleFileSize, Reason: "must specify upper and lower bound"}
	}
	upper, ok := toFloat(bounds[1])
	if !ok {
		return 0, 0, &ConfigError{Rule: RuleFileSize, Reason: "must specify upper and lower bound"}
	}

	scale := math.Pow(1024, float64(power))
	return int64(math.Round(lower * scale)), int64(math.Round(upper * scale)), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// uploadedFileSize checks the received byte count against a unit-scaled
// inclusive range. Bound/unit problems are ConfigErrors, raised before any
// skip logic — a misconfigured model must never validate silently.
func uploadedFileSize(ctx *FileContext, opts *FileOptions) (bool, error) {
	lower, upper, err := sizeBounds(opts.In)
	if err != nil {
		return false, err
	}

	if ctx.skip(opts) {
		return true, nil
	}
	d, ok := ctx.Descriptor()
	if !ok {
		return true, nil
	}
	return d.Size >= lower && d.Size <= upper, nil
}

// ── allowedFileType ──────────────────────────────────────────────────────────

// allowedFileType checks the descriptor's MIME type against the allow-list.
// Exact string match; wildcard patterns are deliberately not supported.
func allowedFileType(ctx *FileContext, opts *FileOptions) (bool, error) {
	if ctx.skip(opts) {
		return true, nil
	}
	d, ok := ctx.Descriptor()
	if !ok {
		return true, nil
	}
	for _, mime := range opts.Allowed {
		if d.Type == mime {
			return true, nil
		}
	}
	return false, nil
}

// ── dimensions ───────────────────────────────────────────────────────────────

// dimensions checks decoded image width/height against the configured
// values. Its guard ordering differs from the other rules: Required here
// means "a file must actually be present", so an empty temp path fails
// outright instead of being skipped.
func dimensions(ctx *FileContext, opts *FileOptions) (bool, error) {
	if ctx.RunContext == CLI && !opts.ValidateInCli {
		return true, nil
	}

	d, ok := ctx.Descriptor()
	empty := !ok || d.TmpPath == ""

	if opts.Required && empty {
		return false, nil
	}
	if opts.SkipEmpty && empty {
		return true, nil
	}
	if !ok {
		return true, nil
	}

	cfg, err := decodeImageConfig(d.TmpPath)
	if err != nil {
		// Unreadable or not an image: a defined failure, never a crash.
		return ctx.Fail(fmt.Sprintf("The %s must be an image.", ctx.Field)), nil
	}

	if opts.Width != nil && cfg.Width != *opts.Width {
		return false, nil
	}
	if opts.Height != nil && cfg.Height != *opts.Height {
		return false, nil
	}
	return true, nil
}

// decodeImageConfig reads just the image header — never the full pixel data.
func decodeImageConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}
