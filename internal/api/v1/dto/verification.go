package dto

type EnterpriseAuthSubmitDTO struct {
	UserID          string `json:"user_id" validate:"required" minLength:"1" doc:"Submitting user; created with a placeholder email if unknown"`
	CompanyName     string `json:"company_name" validate:"required" minLength:"1"`
	CreditCode      string `json:"credit_code" validate:"required,len=18" minLength:"18" maxLength:"18" doc:"Unified social credit code, exactly 18 characters"`
	LicenseImageURL string `json:"license_image_url" validate:"required,url" format:"uri" doc:"Business license image location"`
}

type EnterpriseAuthSubmitResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	AuthID  int64  `json:"auth_id"`
}

type LicenseUploadURLRequestDTO struct {
	UserID   string `json:"user_id" validate:"required" minLength:"1"`
	Filename string `json:"filename" validate:"required" minLength:"1" doc:"Original filename; only the extension is kept"`
}

type LicenseUploadURLResponseDTO struct {
	UploadURL   string `json:"upload_url" doc:"Presigned PUT URL, valid for 15 minutes"`
	StoragePath string `json:"storage_path"`
}
