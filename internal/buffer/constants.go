package buffer

// Supported processing sizes, in samples. The set matches the power-of-two
// sizes accepted by browser analyser and script-processor nodes.
const (
	MinSize = 256
	MaxSize = 16384
)

// sizes is the ordered table SelectSize searches. It is never mutated.
var sizes = [...]int{256, 512, 1024, 2048, 4096, 8192, 16384}
