package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDNA 依据当前习惯集合重算并返回完整的 DNA 快照。
// 解锁过的变异带着首次解锁时间返回，即使触发条件已不再成立。
func (a *API) GetDNA(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dna": a.generator.Generate(a.habits.Habits(), a.clock())})
}
