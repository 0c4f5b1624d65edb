package store

import (
	"educonnect/internal/models"
)

// findByID returns a pointer into items for the entity with the given id,
// or nil when absent.
func findByID[T any](items []T, id uint, idOf func(*T) uint) *T {
	for i := range items {
		if idOf(&items[i]) == id {
			return &items[i]
		}
	}
	return nil
}

func resourceID(r *models.Resource) uint { return r.ID }
func dealID(d *models.Deal) uint         { return d.ID }
func postID(p *models.Post) uint         { return p.ID }

// flipSaved toggles the saved flag on the resource with the given id in a
// single list. The caller applies it to the canonical and filtered lists
// independently; an entity filtered out of one list only flips in the other,
// which diverges until the next refetch.
func flipResourceSaved(items []models.Resource, id uint) {
	if r := findByID(items, id, resourceID); r != nil {
		r.Saved = !r.Saved
	}
}

func flipDealSaved(items []models.Deal, id uint) {
	if d := findByID(items, id, dealID); d != nil {
		d.Saved = !d.Saved
	}
}

// flipPostLiked toggles the liked flag and moves the likes counter with it:
// +1 on the false→true edge, -1 on true→false, never below zero.
func flipPostLiked(items []models.Post, id uint) {
	p := findByID(items, id, postID)
	if p == nil {
		return
	}
	p.IsLiked = !p.IsLiked
	if p.IsLiked {
		p.Likes++
	} else if p.Likes > 0 {
		p.Likes--
	}
}

// appendComment appends to the post's comment list; no-op when the post is
// not in the list.
func appendComment(items []models.Post, id uint, comment models.Comment) {
	if p := findByID(items, id, postID); p != nil {
		p.Comments = append(p.Comments, comment)
	}
}
