package application

import (
	"context"
	"net/url"

	"rental_frontend/domain"
)

type RentalPostService struct {
	api Requester
}

func NewRentalPostService(api Requester) *RentalPostService {
	return &RentalPostService{
		api: api,
	}
}

func (service *RentalPostService) GetAllPosts(ctx context.Context, filters domain.Filters) (*PostList, error) {
	raw, err := service.api.Get(ctx, "/rental-posts", filters.Values())
	if err != nil {
		return nil, err
	}
	return postList(raw)
}

func (service *RentalPostService) GetMyPosts(ctx context.Context, filters domain.Filters) (*PostList, error) {
	raw, err := service.api.Get(ctx, "/rental-posts/my/posts", filters.Values())
	if err != nil {
		return nil, err
	}
	return postList(raw)
}

func (service *RentalPostService) GetPostByID(ctx context.Context, id string) (*PostResult, error) {
	raw, err := service.api.Get(ctx, "/rental-posts/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return postResult(raw)
}

func (service *RentalPostService) CreatePost(ctx context.Context, input domain.PostInput) (*PostResult, error) {
	raw, err := service.api.Post(ctx, "/rental-posts", input)
	if err != nil {
		return nil, err
	}
	return postResult(raw)
}

func (service *RentalPostService) UpdatePost(ctx context.Context, id string, input domain.PostInput) (*PostResult, error) {
	raw, err := service.api.Put(ctx, "/rental-posts/"+url.PathEscape(id), input)
	if err != nil {
		return nil, err
	}
	return postResult(raw)
}

func (service *RentalPostService) DeletePost(ctx context.Context, id string) (*MessageResult, error) {
	raw, err := service.api.Delete(ctx, "/rental-posts/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return messageResult(raw), nil
}

type postDecision struct {
	ID              string `json:"id"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func (service *RentalPostService) ApprovePost(ctx context.Context, id string) (*MessageResult, error) {
	raw, err := service.api.Put(ctx, "/rental-posts/approve", postDecision{ID: id})
	if err != nil {
		return nil, err
	}
	return messageResult(raw), nil
}

func (service *RentalPostService) RejectPost(ctx context.Context, id, reason string) (*MessageResult, error) {
	raw, err := service.api.Put(ctx, "/rental-posts/reject", postDecision{ID: id, RejectionReason: reason})
	if err != nil {
		return nil, err
	}
	return messageResult(raw), nil
}

func (service *RentalPostService) GetRecommendedPosts(ctx context.Context) (*RecommendationList, error) {
	raw, err := service.api.Get(ctx, "/rental-posts/recommendations/my", nil)
	if err != nil {
		return nil, err
	}
	recommendations, err := listField[domain.RentalPost](raw, "recommendations", false)
	if err != nil {
		return nil, err
	}
	return &RecommendationList{Recommendations: recommendations, Raw: raw}, nil
}

func postList(raw []byte) (*PostList, error) {
	posts, err := listField[domain.RentalPost](raw, "posts", true)
	if err != nil {
		return nil, err
	}
	return &PostList{Posts: posts, Pagination: pagination(raw), Raw: raw}, nil
}

func postResult(raw []byte) (*PostResult, error) {
	var post domain.RentalPost
	if err := fieldOrRaw(raw, "post", &post); err != nil {
		return nil, err
	}
	return &PostResult{Post: &post, Raw: raw}, nil
}
