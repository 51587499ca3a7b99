// ABOUTME: Mirrors the FAQ corpus into Charm KV and back
// ABOUTME: One JSON value per FAQ plus an ordering manifest
package charm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harper/faqbot/internal/models"
)

const (
	// FAQPrefix namespaces FAQ entries in the KV store
	FAQPrefix = "faq:"
	// OrderKey holds the ordered list of FAQ ids
	OrderKey = "meta:faq_order"
)

// Store is the KV surface the mirror needs; *Client satisfies it
type Store interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	ListKeys(prefix string) ([]string, error)
	Sync() error
}

// FAQKey generates a key for an FAQ
func FAQKey(id string) string {
	return FAQPrefix + id
}

// Mirror copies the FAQ corpus to and from a KV store
type Mirror struct {
	store    Store
	autoSync bool
}

// NewMirror creates a mirror; autoSync syncs after push and before pull
func NewMirror(store Store, autoSync bool) *Mirror {
	return &Mirror{store: store, autoSync: autoSync}
}

// Push writes faqs to the store and removes entries no longer in the corpus
func (m *Mirror) Push(faqs []models.FAQ) (int, error) {
	existing, err := m.store.ListKeys(FAQPrefix)
	if err != nil {
		return 0, err
	}

	keep := make(map[string]bool, len(faqs))
	order := make([]string, 0, len(faqs))
	for _, faq := range faqs {
		if err := setJSON(m.store, FAQKey(faq.ID), faq); err != nil {
			return 0, fmt.Errorf("failed to push faq %s: %w", faq.ID, err)
		}
		keep[FAQKey(faq.ID)] = true
		order = append(order, faq.ID)
	}

	for _, key := range existing {
		if !keep[key] {
			if err := m.store.Delete(key); err != nil {
				return 0, err
			}
		}
	}

	if err := setJSON(m.store, OrderKey, order); err != nil {
		return 0, err
	}

	if m.autoSync {
		if err := m.store.Sync(); err != nil {
			return 0, fmt.Errorf("sync failed: %w", err)
		}
	}
	return len(faqs), nil
}

// Pull reads the mirrored corpus in its recorded order.
// Entries missing from the manifest follow in creation order.
func (m *Mirror) Pull() ([]models.FAQ, error) {
	if m.autoSync {
		if err := m.store.Sync(); err != nil {
			return nil, fmt.Errorf("sync failed: %w", err)
		}
	}

	keys, err := m.store.ListKeys(FAQPrefix)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.FAQ, len(keys))
	for _, key := range keys {
		var faq models.FAQ
		found, err := getJSON(m.store, key, &faq)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if found {
			byID[strings.TrimPrefix(key, FAQPrefix)] = faq
		}
	}

	var order []string
	if _, err := getJSON(m.store, OrderKey, &order); err != nil {
		return nil, fmt.Errorf("failed to decode faq order: %w", err)
	}

	faqs := make([]models.FAQ, 0, len(byID))
	for _, id := range order {
		if faq, ok := byID[id]; ok {
			faqs = append(faqs, faq)
			delete(byID, id)
		}
	}

	rest := make([]models.FAQ, 0, len(byID))
	for _, faq := range byID {
		rest = append(rest, faq)
	}
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].CreatedAt.Equal(rest[j].CreatedAt) {
			return rest[i].ID < rest[j].ID
		}
		return rest[i].CreatedAt.Before(rest[j].CreatedAt)
	})
	return append(faqs, rest...), nil
}

// Count returns how many FAQs the store holds
func (m *Mirror) Count() (int, error) {
	keys, err := m.store.ListKeys(FAQPrefix)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
