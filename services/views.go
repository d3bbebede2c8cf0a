package services

import (
	"encoding/json"
	"time"

	models "Roomio/models/postgres"
)

// UserSummary is the compact counterpart shown on requests, chats and members.
type UserSummary struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

type UserView struct {
	ID          string          `json:"id"`
	FullName    string          `json:"fullName"`
	AvatarURL   string          `json:"avatarUrl"`
	UserType    string          `json:"userType"`
	Bio         string          `json:"bio"`
	City        string          `json:"city"`
	BudgetCents int64           `json:"budgetCents"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

// ProfileView is the caller's own profile.
type ProfileView struct {
	UserView
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type RequestView struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

type FriendshipView struct {
	ID        string    `json:"id"`
	FriendID  string    `json:"friendId"`
	CreatedAt time.Time `json:"createdAt"`
}

type FriendView struct {
	FriendshipID string    `json:"friendshipId"`
	Since        time.Time `json:"since"`
	User         UserView  `json:"user"`
}

type MessageView struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatView struct {
	ID          string       `json:"id"`
	CreatedAt   time.Time    `json:"createdAt"`
	Participant UserSummary  `json:"participant"`
	LastMessage *MessageView `json:"lastMessage,omitempty"`
}

type PinView struct {
	MessageID string      `json:"messageId"`
	PinnedBy  string      `json:"pinnedBy"`
	PinnedAt  time.Time   `json:"pinnedAt"`
	Message   MessageView `json:"message"`
}

type MatchView struct {
	User   UserView `json:"user"`
	ChatID string   `json:"chatId,omitempty"`
}

type MemberView struct {
	User     UserSummary `json:"user"`
	Role     string      `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

type GroupView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	OwnerID   string       `json:"ownerId"`
	CreatedAt time.Time    `json:"createdAt"`
	Members   []MemberView `json:"members,omitempty"`
}

type InviteView struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Token     string    `json:"token"`
	CreatedBy string    `json:"createdBy"`
	ExpiresAt time.Time `json:"expiresAt"`
	MaxUses   int       `json:"maxUses"`
	Uses      int       `json:"uses"`
	CreatedAt time.Time `json:"createdAt"`
}

type ShareView struct {
	UserID     string `json:"userId"`
	ShareCents int64  `json:"shareCents"`
}

type ExpenseView struct {
	ID          string      `json:"id"`
	GroupID     string      `json:"groupId"`
	PaidBy      string      `json:"paidBy"`
	Description string      `json:"description"`
	AmountCents int64       `json:"amountCents"`
	CreatedAt   time.Time   `json:"createdAt"`
	Shares      []ShareView `json:"shares"`
}

type BalanceView struct {
	UserID   string `json:"userId"`
	NetCents int64  `json:"netCents"`
}

type Settlement struct {
	From        string `json:"from"`
	To          string `json:"to"`
	AmountCents int64  `json:"amountCents"`
}

type ItemView struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func summaryOf(u *models.User) UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{ID: u.ID, FullName: u.FullName, AvatarURL: u.AvatarURL}
}

func userViewOf(u *models.User) UserView {
	v := UserView{
		ID:          u.ID,
		FullName:    u.FullName,
		AvatarURL:   u.AvatarURL,
		UserType:    u.UserType,
		Bio:         u.Bio,
		City:        u.City,
		BudgetCents: u.BudgetCents,
	}
	if len(u.Preferences) > 0 {
		v.Preferences = json.RawMessage(u.Preferences)
	}
	return v
}

func profileViewOf(u *models.User) ProfileView {
	return ProfileView{UserView: userViewOf(u), Email: u.Email, CreatedAt: u.CreatedAt}
}

// requestViewOf shows the request from viewerID's side: User is the other party.
func requestViewOf(r *models.FriendRequest, viewerID string, users map[string]models.User) RequestView {
	otherID := r.Counterpart(viewerID)
	v := RequestView{ID: r.ID, Status: r.Status, CreatedAt: r.CreatedAt, User: UserSummary{ID: otherID}}
	if u, ok := users[otherID]; ok {
		v.User = summaryOf(&u)
	}
	return v
}

func messageViewOf(m *models.Message) MessageView {
	return MessageView{ID: m.ID, ChatID: m.ChatID, SenderID: m.SenderID, Content: m.Content, CreatedAt: m.CreatedAt}
}

func inviteViewOf(i *models.GroupInvite) InviteView {
	return InviteView{
		ID:        i.ID,
		GroupID:   i.GroupID,
		Token:     i.Token,
		CreatedBy: i.CreatedBy,
		ExpiresAt: i.ExpiresAt,
		MaxUses:   i.MaxUses,
		Uses:      i.Uses,
		CreatedAt: i.CreatedAt,
	}
}

func expenseViewOf(e *models.Expense) ExpenseView {
	v := ExpenseView{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Description: e.Description,
		AmountCents: e.AmountCents,
		CreatedAt:   e.CreatedAt,
		Shares:      make([]ShareView, 0, len(e.Shares)),
	}
	for _, s := range e.Shares {
		v.Shares = append(v.Shares, ShareView{UserID: s.UserID, ShareCents: s.ShareCents})
	}
	return v
}

func itemViewOf(i *models.MarketplaceItem) ItemView {
	return ItemView{
		ID:          i.ID,
		SellerID:    i.SellerID,
		Title:       i.Title,
		Description: i.Description,
		PriceCents:  i.PriceCents,
		Category:    i.Category,
		ImageURL:    i.ImageURL,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
