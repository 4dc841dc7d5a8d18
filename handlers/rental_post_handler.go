package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/domain"
	"rental_frontend/errors"
	"rental_frontend/hooks"
)

type RentalPostHandler struct {
	posts     *hooks.RentalPostsHook
	locations *hooks.LocationHook
	users     userSource
	tracer    trace.Tracer
}

type postActions struct {
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

type postDetail struct {
	hooks.RentalPostsState
	Actions postActions `json:"actions"`
}

type rejection struct {
	RejectionReason string `json:"rejection_reason"`
}

func NewRentalPostHandler(posts *hooks.RentalPostsHook, locations *hooks.LocationHook, users userSource, tracer trace.Tracer) *RentalPostHandler {
	return &RentalPostHandler{posts: posts, locations: locations, users: users, tracer: tracer}
}

// Init registers the fixed paths before /rental-posts/{id} so they are not
// read as ids.
func (handler *RentalPostHandler) Init(router *mux.Router) {
	router.HandleFunc("/rental-posts", handler.List).Methods(http.MethodGet)
	router.HandleFunc("/rental-posts/create", handler.CreatePage).Methods(http.MethodGet)
	router.HandleFunc("/rental-posts/create", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/rental-posts/my", handler.MyPosts).Methods(http.MethodGet)
	router.HandleFunc("/rental-posts/{id}", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/rental-posts/{id}/edit", handler.Update).Methods(http.MethodPost)
	router.HandleFunc("/rental-posts/{id}/delete", handler.Delete).Methods(http.MethodPost)
	router.HandleFunc("/rental-posts/{id}/approve", handler.Approve).Methods(http.MethodPost)
	router.HandleFunc("/rental-posts/{id}/reject", handler.Reject).Methods(http.MethodPost)
}

func (handler *RentalPostHandler) render(writer http.ResponseWriter) {
	state := handler.posts.State()
	jsonResponse(newView(state.Loading, state.Error, state), writer)
}

func (handler *RentalPostHandler) List(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.List")
	defer span.End()

	if _, err := handler.posts.FetchAllPosts(ctx, domain.FiltersFromQuery(req.URL.Query())); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchPostsError, handler.posts.State())
		return
	}
	handler.render(writer)
}

func (handler *RentalPostHandler) MyPosts(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.MyPosts")
	defer span.End()

	if _, err := handler.posts.FetchMyPosts(ctx, domain.FiltersFromQuery(req.URL.Query())); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchMyPostsError, handler.posts.State())
		return
	}
	handler.render(writer)
}

func (handler *RentalPostHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.Get")
	defer span.End()

	if _, err := handler.posts.FetchPostByID(ctx, pathID(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchPostError, handler.posts.State())
		return
	}

	state := handler.posts.State()
	detail := postDetail{RentalPostsState: state}
	if post := state.CurrentPost; post != nil {
		user := handler.users.CurrentUser()
		detail.Actions = postActions{
			CanEdit:   post.CanEdit(user),
			CanDelete: post.CanDelete(user),
		}
	}
	jsonResponse(newView(state.Loading, state.Error, detail), writer)
}

// CreatePage preloads the province picker. A location failure still renders
// the form with the error set.
func (handler *RentalPostHandler) CreatePage(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.CreatePage")
	defer span.End()

	_, err := handler.locations.FetchProvinces(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	state := handler.locations.State()
	jsonResponse(newView(state.LoadingProvinces, state.Error, state), writer)
}

func (handler *RentalPostHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.Create")
	defer span.End()

	var input domain.PostInput
	if err := decodeBody(req, &input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	result, err := handler.posts.CreatePost(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.CreatePostError, nil)
		return
	}
	writeJSON(writer, http.StatusCreated, newView(false, "", result.Post))
}

func (handler *RentalPostHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.Update")
	defer span.End()

	var input domain.PostInput
	if err := decodeBody(req, &input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	if _, err := handler.posts.UpdatePost(ctx, pathID(req), input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.UpdatePostError, nil)
		return
	}
	handler.render(writer)
}

func (handler *RentalPostHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.Delete")
	defer span.End()

	if _, err := handler.posts.DeletePost(ctx, pathID(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.DeletePostError, handler.posts.State())
		return
	}
	handler.render(writer)
}

func (handler *RentalPostHandler) Approve(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.Approve")
	defer span.End()

	result, err := handler.posts.ApprovePost(ctx, pathID(req))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.ApprovePostError, nil)
		return
	}
	jsonResponse(newView(false, "", map[string]string{"message": result.Message}), writer)
}

func (handler *RentalPostHandler) Reject(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RentalPostHandler.Reject")
	defer span.End()

	var body rejection
	if err := decodeBody(req, &body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	result, err := handler.posts.RejectPost(ctx, pathID(req), body.RejectionReason)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.RejectPostError, nil)
		return
	}
	jsonResponse(newView(false, "", map[string]string{"message": result.Message}), writer)
}
