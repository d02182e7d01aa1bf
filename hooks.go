package fakedata

// GenerateHook observes every Generate call
type GenerateHook interface {
	BeforeGenerate(ctx *HookContext)
	AfterGenerate(ctx *HookContext)
}

// GenerateHookFuncs adapts plain functions to GenerateHook, nil funcs are skipped
type GenerateHookFuncs struct {
	Before func(*HookContext)
	After  func(*HookContext)
}

func (h GenerateHookFuncs) BeforeGenerate(ctx *HookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h GenerateHookFuncs) AfterGenerate(ctx *HookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

// HookContext describes a generation. Result and Error are set before
// AfterGenerate runs.
type HookContext struct {
	Category string
	Locale   string
	Params   Params
	Result   string
	Error    error
	Metadata map[string]any
}

const (
	metadataKey = "key"
)

func (ctx *HookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *HookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *HookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// ResolvedKey returns the locale key the category was resolved through
func (ctx *HookContext) ResolvedKey() string {
	value, ok := ctx.MetadataValue(metadataKey)
	if !ok {
		return ""
	}
	key, _ := value.(string)
	return key
}
