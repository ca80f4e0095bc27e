package insight

import (
	"fmt"
	"strings"

	"github.com/aebalz/vibetrack/internal/model"
)

const (
	historyLimit   = 5
	snippetRunes   = 50
	noHistoryLine  = "Đây là ngày đầu tiên hoặc không có dữ liệu cũ."
	promptTemplate = `
Bạn là một "Người bạn thân Gen Z" cực kỳ tinh tế, sâu sắc và biết lắng nghe.
Hãy phân tích cảm xúc hôm nay dựa trên nhật ký và so sánh với hành trình vài ngày qua để đưa ra một lời nhận xét/động viên mang tính cá nhân hóa cao.

THÔNG TIN HÔM NAY:
- Năng lượng: %s (%d/5)
- Nhật ký: "%s"

LỊCH SỬ GẦN ĐÂY:
%s

NHIỆM VỤ:
1. Nhận diện xu hướng (ví dụ: Năng lượng đang tăng lên, hay đang có một chuỗi ngày mệt mỏi, hoặc hôm nay là một cú sụt giảm bất ngờ).
2. Viết một câu phản hồi ngắn gọn (dưới 40 từ).
3. Phong cách: Trẻ trung (Gen Z), chân thành, không sáo rỗng, sử dụng icon phù hợp.
4. Nếu thấy chuỗi ngày mệt mỏi, hãy khuyên họ yêu thương bản thân. Nếu thấy năng lượng đang "on fire", hãy cùng ăn mừng.
`
)

// BuildPrompt renders the comment request for today's energy and note.
// history is expected newest first; only the first five entries are used.
func BuildPrompt(energy model.EnergyLevel, note string, history []model.JournalEntry) string {
	return fmt.Sprintf(promptTemplate, energy.Label(), int(energy), note, historyBlock(history))
}

func historyBlock(history []model.JournalEntry) string {
	if len(history) == 0 {
		return noHistoryLine
	}
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}

	lines := make([]string, 0, len(history))
	for _, h := range history {
		lines = append(lines, fmt.Sprintf("- Ngày %s: Năng lượng %s, nội dung: \"%s...\"",
			h.Date, h.Energy.Label(), snippet(h.Content, snippetRunes)))
	}
	return strings.Join(lines, "\n")
}

// snippet cuts s to at most n runes.
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
