package provision

// ResourceOptions are the engine-level options of a declaration.
type ResourceOptions struct {
	// Parent is the name of the declaration this one is nested under.
	Parent string
	// DependsOn lists declarations that must be ready before this one is acted on.
	DependsOn []string
	// Provider selects a named provider configuration; empty means the default.
	Provider string
}

type ResourceOption func(*ResourceOptions)

func Parent(name string) ResourceOption {
	return func(o *ResourceOptions) { o.Parent = name }
}

func DependsOn(names ...string) ResourceOption {
	return func(o *ResourceOptions) { o.DependsOn = append(o.DependsOn, names...) }
}

func Provider(name string) ResourceOption {
	return func(o *ResourceOptions) { o.Provider = name }
}

// NewResourceOptions applies opts in order.
func NewResourceOptions(opts ...ResourceOption) ResourceOptions {
	var o ResourceOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
