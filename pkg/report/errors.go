package report

import "errors"

var (
	ErrInvalidTarget      = errors.New("report.invalid_target")
	ErrInvalidConfig      = errors.New("report.invalid_config")
	ErrFailedToLoadConfig = errors.New("report.aws_config")
	ErrEncode             = errors.New("report.encode")
	ErrWrite              = errors.New("report.write")

	ErrBucketNotFound     = errors.New("report.bucket_not_found")
	ErrAccessDenied       = errors.New("report.access_denied")
	ErrServiceUnavailable = errors.New("report.service_unavailable")
	ErrOperationTimeout   = errors.New("report.timeout")
	ErrOperationCanceled  = errors.New("report.canceled")
)
