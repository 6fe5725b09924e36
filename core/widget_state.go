package core

type WidgetState int

const (
	WidgetStateUnknown WidgetState = iota
	WidgetStateLoading
	WidgetStateLoadingFailed
	WidgetStateReady
	WidgetStateClosed
)

func WidgetStateFromString(s string) WidgetState {
	switch s {
	case WidgetStateLoading.String():
		return WidgetStateLoading
	case WidgetStateLoadingFailed.String():
		return WidgetStateLoadingFailed
	case WidgetStateReady.String():
		return WidgetStateReady
	case WidgetStateClosed.String():
		return WidgetStateClosed
	default:
		return WidgetStateUnknown
	}
}

func (s WidgetState) String() string {
	switch s {
	case WidgetStateLoading:
		return "loading"
	case WidgetStateLoadingFailed:
		return "loading_failed"
	case WidgetStateReady:
		return "ready"
	case WidgetStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
