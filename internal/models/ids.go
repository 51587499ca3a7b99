// ABOUTME: Identifier helpers for log and feedback records
// ABOUTME: IDs sort by creation time and stay unique through a uuid suffix
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func generateID(prefix string) string {
	return fmt.Sprintf("%s_%s_%s", prefix, time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
