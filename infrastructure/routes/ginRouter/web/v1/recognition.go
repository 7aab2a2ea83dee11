package routev1

import (
	"atmsecurity.io/application/controller"
	"atmsecurity.io/application/controller/dto"
	"github.com/gin-gonic/gin"
)

func faceUploadBody(ctx *gin.Context) *dto.FaceUploadDTO {
	var body dto.FaceUploadDTO
	// a missing file is reported by the controller
	body.Image, _ = ctx.FormFile("image")
	return &body
}

func RecognitionRouter(router *gin.RouterGroup) {
	recognitionRouter := router.Group("/recognition")
	{
		recognitionRouter.POST("/recognize", func(ctx *gin.Context) {
			controller.RecognizeFace(appContext(ctx, faceUploadBody(ctx)))
		})

		recognitionRouter.POST("/enroll", func(ctx *gin.Context) {
			controller.CheckEnrollment(appContext(ctx, faceUploadBody(ctx)))
		})
	}
}
