package storage

import (
	"fmt"
	"time"
)

// BuildCVKey derives the object key for an uploaded CV:
// cvs/<offerSlug>/<epochMillis>-<originalFilename>. The millisecond
// timestamp keeps keys collision-free in practice; two uploads for the
// same offer and filename within one millisecond would overwrite.
func BuildCVKey(offerSlug, filename string, now time.Time) string {
	return fmt.Sprintf("cvs/%s/%d-%s", offerSlug, now.UnixMilli(), filename)
}
