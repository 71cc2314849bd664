package model

import "time"

// Receipt records one simulated, successful investment.
type Receipt struct {
	ID            string        `gorm:"primaryKey;size:64;not null" json:"id"`
	ProjectID     string        `gorm:"size:64;index;not null" json:"projectId"`
	ProjectTitle  string        `gorm:"size:255" json:"projectTitle"`
	Amount        int64         `gorm:"not null" json:"amount"`
	TierID        string        `gorm:"size:32" json:"tierId,omitempty"`
	PaymentMethod PaymentMethod `gorm:"size:16" json:"paymentMethod"`
	TransactionID string        `gorm:"size:128" json:"transactionId"`
	UserID        string        `gorm:"size:64;index" json:"userId"`
	Timestamp     time.Time     `gorm:"index" json:"timestamp"`
}

// LastInvestment is the small blob kept per user for the "last investment" banner.
type LastInvestment struct {
	Project string `json:"project"`
	Amount  int64  `json:"amount"`
}

func (r *Receipt) LastInvestment() LastInvestment {
	return LastInvestment{Project: r.ProjectTitle, Amount: r.Amount}
}

// Tables lists every persisted model, in migration order.
func Tables() []any {
	return []any{
		&Project{},
		&Perk{},
		&MerchandiseItem{},
		&MediaAsset{},
		&User{},
		&ActivityLog{},
		&Backup{},
		&CommunityPost{},
		&ChannelMessage{},
		&Receipt{},
	}
}
