// Package producer models cannabis producers, the entities being ranked and
// reviewed. A producer belongs to exactly one state and one category; ranking
// pools are partitioned by both.
package producer

import (
	"fmt"
	"time"
)

// Category is the producer classification. Ranking pools never mix categories.
type Category string

const (
	CategoryFlower Category = "flower"
	CategoryHash   Category = "hash"
)

func (c Category) IsValid() bool {
	return c == CategoryFlower || c == CategoryHash
}

func (c Category) String() string { return string(c) }

// Categories returns all valid categories in ranking order.
func Categories() []Category {
	return []Category{CategoryFlower, CategoryHash}
}

// Market is a producer's visibility scope. Orthogonal to ranking; only used
// to filter which producers appear in a given view.
type Market string

const (
	MarketWhite Market = "white"
	MarketBlack Market = "black"
	MarketBoth  Market = "both"
)

func (m Market) IsValid() bool {
	return m == MarketWhite || m == MarketBlack || m == MarketBoth
}

func (m Market) String() string { return string(m) }

// Producer is the aggregate being voted on.
type Producer struct {
	id          uint
	sid         string
	name        string
	slug        string
	description string
	category    Category
	market      Market
	stateID     uint
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProducer creates a new producer in the given state and category.
func NewProducer(sid, name, slug string, category Category, market Market, stateID uint) (*Producer, error) {
	if name == "" {
		return nil, fmt.Errorf("producer name is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid producer category: %q", category)
	}
	if !market.IsValid() {
		return nil, fmt.Errorf("invalid producer market: %q", market)
	}
	if stateID == 0 {
		return nil, fmt.Errorf("producer state is required")
	}

	now := time.Now()
	return &Producer{
		sid:       sid,
		name:      name,
		slug:      slug,
		category:  category,
		market:    market,
		stateID:   stateID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructProducer rebuilds a producer from persistence.
func ReconstructProducer(
	id uint,
	sid, name, slug, description string,
	category Category,
	market Market,
	stateID uint,
	createdAt, updatedAt time.Time,
) (*Producer, error) {
	if id == 0 {
		return nil, fmt.Errorf("producer ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid producer category: %q", category)
	}

	return &Producer{
		id:          id,
		sid:         sid,
		name:        name,
		slug:        slug,
		description: description,
		category:    category,
		market:      market,
		stateID:     stateID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Producer) ID() uint             { return p.id }
func (p *Producer) SID() string          { return p.sid }
func (p *Producer) Name() string         { return p.name }
func (p *Producer) Slug() string         { return p.slug }
func (p *Producer) Description() string  { return p.description }
func (p *Producer) Category() Category   { return p.category }
func (p *Producer) Market() Market       { return p.market }
func (p *Producer) StateID() uint        { return p.stateID }
func (p *Producer) CreatedAt() time.Time { return p.createdAt }
func (p *Producer) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the internal ID after persistence.
func (p *Producer) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("producer ID already set")
	}
	p.id = id
	return nil
}

// UpdateDetails updates the mutable display fields.
func (p *Producer) UpdateDetails(name, description string) {
	if name != "" {
		p.name = name
	}
	p.description = description
	p.updatedAt = time.Now()
}

// ChangeMarket updates the market visibility scope.
func (p *Producer) ChangeMarket(market Market) error {
	if !market.IsValid() {
		return fmt.Errorf("invalid producer market: %q", market)
	}
	p.market = market
	p.updatedAt = time.Now()
	return nil
}
