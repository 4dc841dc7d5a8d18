package hooks

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	"rental_frontend/errors"
	application "rental_frontend/service"
)

type RentalPostsAPI interface {
	GetAllPosts(ctx context.Context, filters domain.Filters) (*application.PostList, error)
	GetMyPosts(ctx context.Context, filters domain.Filters) (*application.PostList, error)
	GetPostByID(ctx context.Context, id string) (*application.PostResult, error)
	CreatePost(ctx context.Context, input domain.PostInput) (*application.PostResult, error)
	UpdatePost(ctx context.Context, id string, input domain.PostInput) (*application.PostResult, error)
	DeletePost(ctx context.Context, id string) (*application.MessageResult, error)
	ApprovePost(ctx context.Context, id string) (*application.MessageResult, error)
	RejectPost(ctx context.Context, id, reason string) (*application.MessageResult, error)
}

type RentalPostsState struct {
	Loading     bool                `json:"loading"`
	Error       string              `json:"error,omitempty"`
	Posts       []domain.RentalPost `json:"posts"`
	MyPosts     []domain.RentalPost `json:"my_posts"`
	CurrentPost *domain.RentalPost  `json:"current_post"`
	Pagination  domain.Pagination   `json:"pagination"`
}

type RentalPostsHook struct {
	base
	api         RentalPostsAPI
	posts       []domain.RentalPost
	myPosts     []domain.RentalPost
	currentPost *domain.RentalPost
	pagination  domain.Pagination
}

func NewRentalPostsHook(api RentalPostsAPI, logger *logrus.Logger) *RentalPostsHook {
	h := &RentalPostsHook{
		api:        api,
		posts:      []domain.RentalPost{},
		myPosts:    []domain.RentalPost{},
		pagination: domain.Pagination{Page: 1},
	}
	h.init(logger)
	return h
}

func (h *RentalPostsHook) State() RentalPostsState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return RentalPostsState{
		Loading:     h.loading,
		Error:       h.err,
		Posts:       h.posts,
		MyPosts:     h.myPosts,
		CurrentPost: h.currentPost,
		Pagination:  h.pagination,
	}
}

func (h *RentalPostsHook) Subscribe(fn func(RentalPostsState)) func() {
	return h.subscribe(func() { fn(h.State()) })
}

func (h *RentalPostsHook) FetchAllPosts(ctx context.Context, filters domain.Filters) (*application.PostList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetAllPosts(ctx, filters)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchPostsError, nil)
	}

	h.succeed(&h.loading, func() {
		h.posts = list.Posts
		if list.Pagination != nil {
			h.pagination = *list.Pagination
		}
	})
	return list, nil
}

func (h *RentalPostsHook) FetchMyPosts(ctx context.Context, filters domain.Filters) (*application.PostList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetMyPosts(ctx, filters)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchMyPostsError, nil)
	}

	h.succeed(&h.loading, func() {
		h.myPosts = list.Posts
		if list.Pagination != nil {
			h.pagination = *list.Pagination
		}
	})
	return list, nil
}

func (h *RentalPostsHook) FetchPostByID(ctx context.Context, id string) (*application.PostResult, error) {
	h.begin(&h.loading)

	result, err := h.api.GetPostByID(ctx, id)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchPostError, nil)
	}

	h.succeed(&h.loading, func() { h.currentPost = result.Post })
	return result, nil
}

func (h *RentalPostsHook) CreatePost(ctx context.Context, input domain.PostInput) (*application.PostResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	h.begin(&h.loading)

	result, err := h.api.CreatePost(ctx, input)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.CreatePostError, nil)
	}

	h.succeed(&h.loading, nil)
	return result, nil
}

func (h *RentalPostsHook) UpdatePost(ctx context.Context, id string, input domain.PostInput) (*application.PostResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	h.begin(&h.loading)

	result, err := h.api.UpdatePost(ctx, id, input)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.UpdatePostError, nil)
	}

	h.succeed(&h.loading, nil)
	return result, nil
}

// DeletePost also drops the post from the cached "my posts" list.
func (h *RentalPostsHook) DeletePost(ctx context.Context, id string) (*application.MessageResult, error) {
	h.begin(&h.loading)

	result, err := h.api.DeletePost(ctx, id)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.DeletePostError, nil)
	}

	h.succeed(&h.loading, func() {
		remaining := make([]domain.RentalPost, 0, len(h.myPosts))
		for _, post := range h.myPosts {
			if post.ID != id {
				remaining = append(remaining, post)
			}
		}
		h.myPosts = remaining
	})
	return result, nil
}

func (h *RentalPostsHook) ApprovePost(ctx context.Context, id string) (*application.MessageResult, error) {
	h.begin(&h.loading)

	result, err := h.api.ApprovePost(ctx, id)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.ApprovePostError, nil)
	}

	h.succeed(&h.loading, nil)
	return result, nil
}

func (h *RentalPostsHook) RejectPost(ctx context.Context, id, reason string) (*application.MessageResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, &domain.ValidationError{Field: "rejection_reason", Message: errors.RejectionReasonRequired}
	}
	h.begin(&h.loading)

	result, err := h.api.RejectPost(ctx, id, reason)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.RejectPostError, nil)
	}

	h.succeed(&h.loading, nil)
	return result, nil
}
