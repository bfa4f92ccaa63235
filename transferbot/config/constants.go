package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Pagination
	TransfersPerPage = 7
	ItemsPerPage     = 10

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	// Discord UI Colors
	BackgroundColor   = 0x2B2D31
	EmbedDefaultColor = 0x2B2D31

	// Transfer type colors
	OfferColor    = 0x0099FF // blue for plain offers
	ContractColor = 0xFFD700 // gold for signed contracts
	LoanColor     = 0x800080 // purple for loans
	TradeColor    = 0xFFAA00 // orange for swaps
	ReleaseColor  = 0xFF0000 // red for terminations
)

// Timeouts and scheduling
const (
	DefaultHandlerTimeout   = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	NetworkDialTimeout      = 5 * time.Second

	// Negotiation lifecycle
	NegotiationTTL    = 24 * time.Hour
	TeardownGrace     = 1500 * time.Millisecond
	DedupWindow       = 5 * time.Minute
	SweepConcurrency  = 4
	DedupCacheSize    = 4096
	SessionCacheSize  = 512
)

// Game mechanics
const (
	WorkPayout      = 250
	WorkCooldown    = 1 * time.Hour
	CommandCooldown = 24 * time.Hour
)

// Emoji glyphs used across embeds
const (
	EmojiCash     = "💵"
	EmojiBank     = "🏦"
	EmojiContract = "📝"
	EmojiTransfer = "🔄"
	EmojiRelease  = "🆓"
	EmojiLoan     = "🤝"
	EmojiShop     = "🛒"
	EmojiWork     = "💼"
)
