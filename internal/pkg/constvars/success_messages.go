package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth messages
	LoginSuccess      = "successfully login"
	LogoutSuccess     = "successfully logout"
	ProfileGetSuccess = "get profile successfully"

	// App config messages
	GetAppConfigSuccess = "get app config successfully"
	GetAbilitiesSuccess = "get abilities successfully"
	GetRolesSuccess     = "get roles successfully"

	// Entity messages, formatted with the entity display name
	FindAllSuccessFormat = "get %s list successfully"
	FindOneSuccessFormat = "get %s detail successfully"
	CreateSuccessFormat  = "%s created successfully"
	UpdateSuccessFormat  = "%s updated successfully"
	DeleteSuccessFormat  = "%s deleted successfully"

	// Attachment messages
	UploadAttachmentSuccess = "attachment uploaded successfully"
	GetAttachmentsSuccess   = "get attachments successfully"
	DeleteAttachmentSuccess = "attachment deleted successfully"

	// Notification messages
	GetNotificationsSuccess = "get notifications successfully"
	ReadNotificationSuccess = "notification marked as read"
)
