package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/response"
	"civic-forum-api/internal/service"
)

type PostHandler struct {
	postService   service.PostService
	threadService service.ThreadService
	logger        *zap.Logger
}

func NewPostHandler(postService service.PostService, threadService service.ThreadService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService:   postService,
		threadService: threadService,
		logger:        logger,
	}
}

// CreatePost godoc
// @Summary      게시글 작성
// @Description  새 이슈 게시글을 작성합니다
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePostRequest true "게시글 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.PostResponse} "게시글 작성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), actor.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, post)
}

// GetThread godoc
// @Summary      게시글과 댓글 트리 조회
// @Description  게시글, 로그인 사용자의 투표, 그룹별(토론/질문) 댓글 트리를 함께 조회합니다. 답글은 3단계까지 포함됩니다
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ThreadResponse} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      401 {object} response.ErrorResponse "유효하지 않은 토큰"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /posts/{postId} [get]
func (h *PostHandler) GetThread(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	thread, err := h.threadService.GetThread(c.Request.Context(), postID, viewerID(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, thread)
}

// GetComments godoc
// @Summary      댓글 트리 조회
// @Description  게시글의 댓글을 토론/질문 그룹으로 나누어 조회합니다. 토론은 추천순, 질문은 최신순입니다
// @Tags         comments
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.GroupedThread} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /posts/{postId}/comments [get]
func (h *PostHandler) GetComments(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId", "Invalid post ID")
	if !ok {
		return
	}

	tree, err := h.threadService.GetComments(c.Request.Context(), postID, viewerID(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tree)
}
