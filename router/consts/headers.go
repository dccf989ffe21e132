package consts

const (
	HeaderCacheControl = "Cache-Control"
	HeaderVersion      = "X-RECETARIO-VERSION"
)
