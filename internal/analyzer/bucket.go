package analyzer

import "math"

// Category is one of the five fixed duration buckets.
type Category int

// Duration categories, ascending.
const (
	SuperShort Category = iota
	Short
	Medium
	Long
	VeryLong

	numCategories
)

var categoryNames = [numCategories]string{
	"Super Short",
	"Short",
	"Medium",
	"Long",
	"Very Long",
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return "Unknown"
	}

	return categoryNames[c]
}

// categoryBounds is the ordered table of exclusive upper bounds, in seconds.
// Intervals are half-open [lower, upper): a duration exactly on a cutoff
// belongs to the higher bucket.
var categoryBounds = [numCategories]struct {
	Upper    float64
	Category Category
}{
	{60, SuperShort},        // under 1 min
	{300, Short},            // 1-5 min
	{1200, Medium},          // 5-20 min
	{3600, Long},            // 20-60 min
	{math.Inf(1), VeryLong}, // 1 hour and up
}

// Classify selects the bucket for a duration in seconds.
func Classify(durationSeconds float64) Category {
	for _, bound := range categoryBounds {
		if durationSeconds < bound.Upper {
			return bound.Category
		}
	}

	return VeryLong
}
