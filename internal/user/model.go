package user

import (
	"time"

	"renthouse-auth/pkg/oauth"
)

const (
	UserTypeUser  = "user"
	UserTypeOwner = "owner"
	UserTypeAgent = "agent"
	UserTypeAdmin = "admin"

	AuthProviderLocal    = "local"
	AuthProviderGoogle   = oauth.ProviderGoogle
	AuthProviderFacebook = oauth.ProviderFacebook

	PasswordHashCost = 12
)

// Index names are part of the duplicate key error message, which is how conflicts are told apart.
const (
	IndexEmail       = "email_unique"
	IndexNidNumber   = "nidNumber_unique"
	IndexPhoneNumber = "phoneNumber_unique"
)

const (
	FieldEmail       = "email"
	FieldNidNumber   = "nidNumber"
	FieldPhoneNumber = "phoneNumber"
	FieldGoogleId    = "googleId"
	FieldFacebookId  = "facebookId"
)

const (
	MessageRegistered       = "User registered successfully"
	MessageLoginSuccessful  = "Login successful"
	MessageTokenRefreshed   = "Token refreshed successfully"
	MessageEmailTaken       = "User with this email already exists"
	MessageNidNumberTaken   = "User with this NID number already exists"
	MessagePhoneNumberTaken = "User with this phone number already exists"
	MessageUserExists       = "User already exists"
	MessageEmailRequired    = "Email permission is required"
	MessageProviderDisabled = "%s login is not configured"
)

var conflictMessages = map[string]string{
	IndexEmail:       MessageEmailTaken,
	IndexNidNumber:   MessageNidNumberTaken,
	IndexPhoneNumber: MessagePhoneNumberTaken,
}

var providerIdFields = map[string]string{
	AuthProviderGoogle:   FieldGoogleId,
	AuthProviderFacebook: FieldFacebookId,
}

type UserDocument struct {
	Id               string     `bson:"_id" json:"id"`
	Email            string     `bson:"email" json:"email"`
	Password         string     `bson:"password,omitempty" json:"-"`
	FirstName        string     `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName         string     `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Name             string     `bson:"name,omitempty" json:"name,omitempty"`
	ProfileImage     string     `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	UserType         string     `bson:"userType" json:"userType"`
	AuthProvider     string     `bson:"authProvider" json:"authProvider"`
	GoogleId         string     `bson:"googleId,omitempty" json:"googleId,omitempty"`
	FacebookId       string     `bson:"facebookId,omitempty" json:"facebookId,omitempty"`
	PhoneNumber      string     `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	NidNumber        string     `bson:"nidNumber,omitempty" json:"nidNumber,omitempty"`
	LoginCount       int        `bson:"loginCount" json:"loginCount"`
	LastLogin        *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	LastActivity     *time.Time `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	LastTokenRefresh *time.Time `bson:"lastTokenRefresh,omitempty" json:"lastTokenRefresh,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ProviderAttachment is applied to an existing account on OAuth login.
type ProviderAttachment struct {
	Provider     string
	ProviderId   string
	ProfileImage string
	At           time.Time
}

// LoginPayload carries no validation rules; malformed credentials get the same 401 as wrong ones.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterPayload struct {
	FirstName   string `json:"firstName" validate:"omitempty,max=50"`
	LastName    string `json:"lastName" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	NidNumber   string `json:"nidNumber" validate:"omitempty,nid"`
	Password    string `json:"password" validate:"required,min=6"`
	UserType    string `json:"userType" validate:"omitempty,oneof=user owner agent"`
}

type GoogleLoginPayload struct {
	Token      string `json:"token" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type FacebookLoginPayload struct {
	AccessToken string `json:"accessToken" validate:"required"`
	RememberMe  bool   `json:"rememberMe"`
}

type Session struct {
	User  *UserDocument
	Token string
}

type SessionResponse struct {
	Message string        `json:"message,omitempty"`
	User    *UserDocument `json:"user"`
	Token   string        `json:"token,omitempty"`
}
