package querycache

// QueryOptions controls a single read. A disabled read never touches the
// cache or the source and resolves to InitialData, else FallbackData.
type QueryOptions[R any] struct {
	Disabled     bool
	InitialData  *R
	FallbackData *R
}

func (o *QueryOptions[R]) disabledResult() (*R, bool) {
	if o == nil || !o.Disabled {
		return nil, false
	}
	if o.InitialData != nil {
		return o.InitialData, true
	}
	return o.FallbackData, true
}
