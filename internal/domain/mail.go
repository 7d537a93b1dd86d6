package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SubmissionMailData struct {
	EmployeeName string  `json:"employeeName"`
	CompanyName  string  `json:"companyName"`
	WeekLabel    string  `json:"weekLabel"`
	TotalHours   float64 `json:"totalHours"`
	ApproveURL   string  `json:"approveURL"`
	RejectURL    string  `json:"rejectURL"`
	ExpiresAt    string  `json:"expiresAt"`
}

type DecisionMailData struct {
	EmployeeName string `json:"employeeName"`
	CompanyName  string `json:"companyName"`
	WeekLabel    string `json:"weekLabel"`
	Approved     bool   `json:"approved"`
	Comment      string `json:"comment"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type InvitationMailData struct {
	FirstName  string `json:"firstName"`
	AgencyName string `json:"agencyName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}
