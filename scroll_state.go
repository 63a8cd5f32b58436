package scrollview

// ScrollState classifies the direction of the last scroll sample.
type ScrollState uint8

const (
	// ScrollStateStop means the offset did not change.
	ScrollStateStop ScrollState = iota
	// ScrollStateUp means the content moved up, i.e. the offset grew and the
	// view advanced towards the end of the list.
	ScrollStateUp
	// ScrollStateDown means the content moved down and the view retreated
	// towards the start of the list.
	ScrollStateDown
)

func (s ScrollState) String() string {
	switch s {
	case ScrollStateUp:
		return "up"
	case ScrollStateDown:
		return "down"
	default:
		return "stop"
	}
}

func classifyScroll(prev, current int) ScrollState {
	switch {
	case current > prev:
		return ScrollStateUp
	case current < prev:
		return ScrollStateDown
	default:
		return ScrollStateStop
	}
}
