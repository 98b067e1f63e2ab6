package lexicon

import (
	"fmt"

	"github.com/dax233/brainhole/internal/domain"
)

// The formatters mirror the historical per-lexicon output layouts.
// Missing or NULL columns render as 暂无 rather than failing.

const noValue = "暂无"

func formatBrainhole(rec domain.Record, searchResult bool) string {
	return fmt.Sprintf("%s\n%s\n词汇: %s\n难度：%s\n胜率：%s\n类型：%s\n出题人：%s\n释义：%s\n场次：%s",
		titlePrefix("脑洞", searchResult),
		rec.StrOr("pinyin", "拼音:暂无"),
		rec.StrOr("term", noValue),
		rec.StrOr("difficulty", noValue),
		rec.StrOr("win_rate", noValue),
		rec.StrOr("category", noValue),
		rec.StrOr("author", noValue),
		rec.StrOr("definition", noValue),
		rec.StrOr("match_name", "未知场次"),
	)
}

func formatPinshi(rec domain.Record, searchResult bool) string {
	return fmt.Sprintf("%s\n%s\n题目: %s\n出处：%s\n书写：%s\n难度：%s\n解释：%s",
		titlePrefix("拼释", searchResult),
		rec.StrOr("pinyin", "拼音:暂无"),
		rec.StrOr("term", noValue),
		rec.StrOr("source_text", noValue),
		rec.StrOr("writing", noValue),
		rec.StrOr("difficulty", noValue),
		rec.StrOr("definition", noValue),
	)
}

// 蝠汁牌 cards carry their whole display text in one column; the title
// column exists for search but is not shown.
func formatFuzhipai(rec domain.Record, searchResult bool) string {
	return fmt.Sprintf("%s\n%s",
		titlePrefix("蝠汁牌", searchResult),
		rec.StrOr("full_text", "内容缺失"),
	)
}

func formatSuilan(rec domain.Record, searchResult bool) string {
	return fmt.Sprintf("%s\n题面: %s\n选手：%s\n出处：%s\n解释：%s",
		titlePrefix("随蓝", searchResult),
		rec.StrOr("term", noValue),
		rec.StrOr("player", noValue),
		rec.StrOr("source_text", noValue),
		rec.StrOr("definition", noValue),
	)
}

func formatWuxing(rec domain.Record, searchResult bool) string {
	return fmt.Sprintf("%s\n%s\n词语: %s\n难度：%s\n出自：%s\n出题人：%s\n释义：%s",
		titlePrefix("五行", searchResult),
		rec.StrOr("pinyin", "拼音:暂无"),
		rec.StrOr("term", noValue),
		rec.StrOr("difficulty", noValue),
		rec.StrOr("source_origin", noValue),
		rec.StrOr("author", noValue),
		rec.StrOr("definition", noValue),
	)
}

func formatYuanxiao(rec domain.Record, searchResult bool) string {
	return fmt.Sprintf("%s\n%s\n%s\n出处：%s\n丽句难度：%s\n脑洞难度：%s\n解释：%s",
		titlePrefix("元晓", searchResult),
		rec.StrOr("pinyin", noValue),
		rec.StrOr("term", noValue),
		rec.StrOr("source_text", noValue),
		rec.StrOr("liju_difficulty", noValue),
		rec.StrOr("naodong_difficulty", noValue),
		rec.StrOr("definition", noValue),
	)
}

func formatZhenxiu(rec domain.Record, searchResult bool) string {
	return fmt.Sprintf("%s\n%s\n词汇: %s\n出处：%s\n题型：%s\n解释：%s\n双音节：%s",
		titlePrefix("祯休", searchResult),
		rec.StrOr("pinyin", noValue),
		rec.StrOr("term", noValue),
		rec.StrOr("source_text", noValue),
		rec.StrOr("category", noValue),
		rec.StrOr("definition", noValue),
		rec.StrOr("is_disyllabic", noValue),
	)
}
