package schedule

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/example/daytimetable/internal/decode"
)

// defaultCacheSize bounds the memoization cache's resident set; a
// handful of distinct catalogs/parameter sets is the realistic
// working set for this single-day, synchronous domain.
const defaultCacheSize = 256

var cache, _ = lru.New[string, []decode.Row](defaultCacheSize)
