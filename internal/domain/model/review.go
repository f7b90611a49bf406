package model

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// Review is a product review.
type Review struct {
	ID                    int64        `json:"id"`
	ProductID             int64        `json:"productId"`
	ProductName           string       `json:"productName"`
	UserID                int64        `json:"userId"`
	UserName              string       `json:"userName"`
	UserAvatar            string       `json:"userAvatar"`
	Rating                int          `json:"rating"`
	Title                 string       `json:"title"`
	Comment               string       `json:"comment"`
	IsVerifiedPurchase    bool         `json:"isVerifiedPurchase"`
	Status                ReviewStatus `json:"status"`
	IsFeatured            bool         `json:"isFeatured"`
	HelpfulVotes          int          `json:"helpfulVotes"`
	TotalVotes            int          `json:"totalVotes"`
	HelpfulnessPercentage float64      `json:"helpfulnessPercentage"`
	CreatedAt             string       `json:"createdAt"`
	UpdatedAt             string       `json:"updatedAt"`
}

// CreateReviewRequest is the create/update review payload.
type CreateReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title,omitempty"`
	Comment   string `json:"comment,omitempty"`
}
