package repository

import "github.com/sirupsen/logrus"

// logResolveFailure records a best-effort read failure on the resolution or
// subscription path. These never surface to callers; the read path favors a
// partially resolved view over no view.
func logResolveFailure(collection string, err error) {
	logrus.WithError(err).WithField("collection", collection).Warn("best-effort read failed")
}
