package persistence

import "fmt"

const (
	KeyClientID             = "client_id"
	KeyClientSecret         = "client_secret"
	KeyAccessToken          = "access_token"
	KeyTokenExpires         = "token_expires"
	KeyMemberID             = "member_id"
	KeyOrganizations        = "organizations"
	KeyPostTarget           = "post_target"
	KeyOrganizationID       = "organization_id"
	KeyPostTypes            = "post_types"
	KeyPostTemplate         = "post_template"
	KeyDefaultImage         = "default_image"
	KeyImageGallery         = "image_gallery"
	KeyImageSource          = "image_source"
	KeyGalleryRotationIndex = "gallery_rotation_index"
	KeyLastExpiryEmailDate  = "last_expiry_email_date"
)

func itemKey(itemID, field string) string { return fmt.Sprintf("item:%s:%s", itemID, field) }

func itemTargetKey(itemID, field, target string) string {
	return fmt.Sprintf("item:%s:%s:%s", itemID, field, target)
}
