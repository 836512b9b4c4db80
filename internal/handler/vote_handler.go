package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/response"
	"civic-forum-api/internal/service"
)

type VoteHandler struct {
	voteService service.VoteService
	logger      *zap.Logger
}

func NewVoteHandler(voteService service.VoteService, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
		logger:      logger,
	}
}

// CastVote godoc
// @Summary      투표 (추천/비추천)
// @Description  게시글 또는 댓글에 +1/-1 투표를 합니다. 같은 값을 다시 보내면 투표가 취소되고, 반대 값을 보내면 전환됩니다
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CastVoteRequest true "투표 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.VoteResult} "투표 반영 후 집계"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 (details: 필드명)"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "대상을 찾을 수 없음"
// @Failure      409 {object} response.ErrorResponse "동시 수정 충돌"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /votes [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	ref := domain.VotableRef{Kind: domain.VotableKind(req.VotableType), ID: req.VotableID}
	result, err := h.voteService.CastVote(c.Request.Context(), actor.UserID, ref, req.Value)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
