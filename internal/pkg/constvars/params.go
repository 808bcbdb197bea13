package constvars

const (
	URLParamID             = "id"
	URLParamObjectName     = "object_name"
	URLParamNotificationID = "notification_id"
)

const (
	URLQueryParamPage           = "page"
	URLQueryParamPageSize       = "page_size"
	URLQueryParamInclude        = "include"
	URLQueryParamOrderBy        = "order_by"
	URLQueryParamOrderDirection = "order_direction"
	URLQueryParamFilter         = "filter"
	URLQueryParamUnreadOnly     = "unread_only"
)

const (
	FormFieldFile = "file"
)

const (
	OrderDirectionAsc  = "asc"
	OrderDirectionDesc = "desc"
)

// IncludeCount is the include token that asks for the `_count` aggregate.
const IncludeCount = "_count"
