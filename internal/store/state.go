package store

import (
	"educonnect/internal/models"
	"educonnect/internal/utils"
)

// Location is a user position used to annotate deal distances.
type Location struct {
	Latitude  float64
	Longitude float64
}

// ResourceState caches the resource catalog and its filtered projection.
type ResourceState struct {
	Resources  []models.Resource
	Filtered   []models.Resource
	Categories []string
	Filters    Criteria
	Loading    bool
	Err        string
}

func NewResourceState() *ResourceState {
	return &ResourceState{
		Categories: []string{"Technology", "Grants", "Design", "AI", "Business", "Science"},
	}
}

func (s *ResourceState) SetLoading() {
	s.Loading = true
	s.Err = ""
}

func (s *ResourceState) SetError(msg string) {
	s.Loading = false
	s.Err = msg
}

// SetFetched replaces the canonical list and resets the projection to it.
// The projection is its own copy so a later toggle updates the two lists
// independently rather than hitting one shared element twice.
func (s *ResourceState) SetFetched(resources []models.Resource) {
	s.Loading = false
	s.Resources = resources
	s.Filtered = append([]models.Resource(nil), resources...)
}

// SetFilters stores the criteria and recomputes the projection from the
// canonical list.
func (s *ResourceState) SetFilters(c Criteria) {
	s.Filters = c
	s.Filtered = FilterResources(s.Resources, c)
}

func (s *ResourceState) ClearFilters() {
	s.Filters = Criteria{}
	s.Filtered = append([]models.Resource(nil), s.Resources...)
}

// ToggleSave flips the saved flag on the entity in both lists.
func (s *ResourceState) ToggleSave(id uint) {
	flipResourceSaved(s.Resources, id)
	flipResourceSaved(s.Filtered, id)
}

// DealState caches deals, their filtered projection, and the user location
// used to derive distances.
type DealState struct {
	Deals        []models.Deal
	Filtered     []models.Deal
	Categories   []string
	Filters      Criteria
	UserLocation *Location
	Loading      bool
	Err          string
}

func NewDealState() *DealState {
	return &DealState{
		Categories: []string{"Technology", "Telecom", "Food", "Software", "Transport", "Housing"},
	}
}

func (s *DealState) SetLoading() {
	s.Loading = true
	s.Err = ""
}

func (s *DealState) SetError(msg string) {
	s.Loading = false
	s.Err = msg
}

func (s *DealState) SetFetched(deals []models.Deal) {
	s.Loading = false
	s.Deals = deals
	s.Filtered = append([]models.Deal(nil), deals...)
	if s.UserLocation != nil {
		s.annotateDistances()
	}
}

// SetUserLocation records the position and annotates distances on the
// canonical list and the filtered projection in the same transition, so
// neither list carries stale distances.
func (s *DealState) SetUserLocation(latitude, longitude float64) {
	s.UserLocation = &Location{Latitude: latitude, Longitude: longitude}
	s.annotateDistances()
}

func (s *DealState) annotateDistances() {
	annotate := func(deals []models.Deal) {
		for i := range deals {
			d := &deals[i]
			if d.HasLocation() {
				km := utils.Distance(s.UserLocation.Latitude, s.UserLocation.Longitude, *d.Latitude, *d.Longitude)
				d.Distance = &km
			}
		}
	}
	annotate(s.Deals)
	annotate(s.Filtered)
}

func (s *DealState) SetFilters(c Criteria) {
	s.Filters = c
	s.Filtered = FilterDeals(s.Deals, c)
}

// FilterByCategory keeps the other active criteria and swaps the category.
func (s *DealState) FilterByCategory(category string) {
	c := s.Filters
	c.Category = category
	s.SetFilters(c)
}

func (s *DealState) ClearFilters() {
	s.Filters = Criteria{}
	s.Filtered = append([]models.Deal(nil), s.Deals...)
}

func (s *DealState) ToggleSave(id uint) {
	flipDealSaved(s.Deals, id)
	flipDealSaved(s.Filtered, id)
}

// CommunityState caches the feed and its filtered projection.
type CommunityState struct {
	Posts      []models.Post
	Filtered   []models.Post
	Categories []string
	Filters    Criteria
	Loading    bool
	Err        string
}

func NewCommunityState() *CommunityState {
	return &CommunityState{
		Categories: []string{"Bourses", "Deals", "Cours", "Logement", "Stage", "Vie étudiante"},
	}
}

func (s *CommunityState) SetLoading() {
	s.Loading = true
	s.Err = ""
}

func (s *CommunityState) SetError(msg string) {
	s.Loading = false
	s.Err = msg
}

func (s *CommunityState) SetFetched(posts []models.Post) {
	s.Loading = false
	s.Posts = posts
	s.Filtered = append([]models.Post(nil), posts...)
}

func (s *CommunityState) FilterByCategory(category string) {
	s.Filters = Criteria{Category: category}
	s.Filtered = FilterPosts(s.Posts, s.Filters)
}

// ToggleLike flips the liked flag and adjusts the likes counter on the
// entity in both lists.
func (s *CommunityState) ToggleLike(id uint) {
	flipPostLiked(s.Posts, id)
	flipPostLiked(s.Filtered, id)
}

// PrependPost puts a freshly created post at the head of both lists, so it
// shows at index 0 regardless of the active category filter.
func (s *CommunityState) PrependPost(post models.Post) {
	s.Posts = append([]models.Post{post}, s.Posts...)
	s.Filtered = append([]models.Post{post}, s.Filtered...)
}

// AddComment appends the comment to the post in both lists; silently a
// no-op when the post id is unknown.
func (s *CommunityState) AddComment(id uint, comment models.Comment) {
	appendComment(s.Posts, id, comment)
	appendComment(s.Filtered, id, comment)
}
