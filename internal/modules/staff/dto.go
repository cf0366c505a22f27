package staff

type CreateJoinRequest struct {
	BusinessID         int64  `json:"business_id" binding:"required"`
	SupervisorUsername string `json:"supervisor_username" binding:"required"`
	Role               string `json:"role" binding:"required"`
}

type ResolveJoinRequest struct {
	// Action is "approve" or "reject".
	Action string `json:"action" binding:"required"`
}
