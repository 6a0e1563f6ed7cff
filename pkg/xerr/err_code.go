package xerr

const (
	ErrInternalServer = 500 // HTTP 500

	ErrBadRequest        = 1000 // HTTP 400
	ErrInvalidInput      = 1001 // HTTP 400
	ErrMissingParameter  = 1002 // HTTP 400
	ErrUnsupportedFormat = 1004 // HTTP 400

	ErrUnauthenticated = 1100 // HTTP 401
	ErrInvalidKey      = 1101 // HTTP 401

	ErrNotFound         = 1300 // HTTP 404
	ErrResourceNotFound = 1301 // HTTP 404

	ErrRenderFailed        = 1500 // HTTP 500
	ErrUpstream            = 1501 // HTTP 500，外部数据源故障
	ErrInsufficientContent = 1502 // 页面存在但正文过短
)
