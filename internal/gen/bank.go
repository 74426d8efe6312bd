package gen

import "github.com/qian20010413/xinyunxuexi/internal/quiz"

// Built-in question banks for the subjects that have no procedural
// generator. Every entry is a choice question whose correct answer is
// stored as the bare option letter.
var builtinBanks = map[quiz.Subject][]quiz.Question{
	quiz.SubjectChinese: {
		{
			ID: "c1", Subject: quiz.SubjectChinese, Difficulty: quiz.DifficultyConcept,
			Topic:         "文学常识",
			Content:       "《论语》是记录____及其弟子言行的书？",
			Options:       []string{"A. 孔子", "B. 孟子", "C. 老子", "D. 墨子"},
			CorrectAnswer: "A",
			Explanation:   "《论语》是儒家经典之一，由孔子的弟子及再传弟子编写。",
		},
		{
			ID: "c2", Subject: quiz.SubjectChinese, Difficulty: quiz.DifficultyConcept,
			Topic:         "字义辨析",
			Content:       "“不求甚解”中“甚”的意思是？",
			Options:       []string{"A. 甚至", "B. 过分", "C. 很多", "D. 厉害"},
			CorrectAnswer: "B",
			Explanation:   "原意是不在字句上过分推敲。",
		},
		{
			ID: "c3", Subject: quiz.SubjectChinese, Difficulty: quiz.DifficultyConcept,
			Topic:         "修辞手法",
			Content:       "“盼望着，盼望着，东风来了，春天的脚步近了”运用了什么修辞？",
			Options:       []string{"A. 比喻、拟人", "B. 反复、拟人", "C. 夸张、排比", "D. 对偶、反复"},
			CorrectAnswer: "B",
			Explanation:   "“盼望着”重复出现是反复，“脚步近了”赋予春天人的行为，是拟人。",
		},
		{
			ID: "c4", Subject: quiz.SubjectChinese, Difficulty: quiz.DifficultyConcept,
			Topic:         "古诗名句",
			Content:       "“海日生残夜，江春入旧年”体现了时序更替的自然理趣。这句诗出自？",
			Options:       []string{"A. 《次北固山下》", "B. 《天净沙·秋思》", "C. 《闻王昌龄左迁龙标遥有此寄》", "D. 《夜雨寄北》"},
			CorrectAnswer: "A",
			Explanation:   "这是唐代诗人王湾《次北固山下》的名句。",
		},
		{
			ID: "c5", Subject: quiz.SubjectChinese, Difficulty: quiz.DifficultyMedium,
			Topic:         "词语运用",
			Content:       "下列句子中加点成语使用不恰当的一项是？",
			Options:       []string{"A. 老师煞有介事地讲起了这个故事。", "B. 他说话总是咄咄逼人，让人不舒服。", "C. 听完这段演讲，大家都恍然大悟。", "D. 这件事办得可谓是各得其所。"},
			CorrectAnswer: "A",
			Explanation:   "“煞有介事”指像真有那么回事似的，多指装模作样，用在这里褒贬不当。",
		},
	},
	quiz.SubjectEnglish: {
		{
			ID: "e1", Subject: quiz.SubjectEnglish, Difficulty: quiz.DifficultyConcept,
			Topic:         "人称代词",
			Content:       "____ am a girl. ____ name is Lucy.",
			Options:       []string{"A. I; My", "B. I; Me", "C. My; I", "D. Me; My"},
			CorrectAnswer: "A",
			Explanation:   "第一空做主语用主格I，第二空做定语用物主代词My。",
		},
		{
			ID: "e2", Subject: quiz.SubjectEnglish, Difficulty: quiz.DifficultyConcept,
			Topic:         "冠词用法",
			Content:       "This is ____ apple. It is ____ red apple.",
			Options:       []string{"A. a; a", "B. an; an", "C. an; a", "D. a; an"},
			CorrectAnswer: "C",
			Explanation:   "apple是以元音音素开头，用an；red是以辅音音素开头，用a。",
		},
		{
			ID: "e3", Subject: quiz.SubjectEnglish, Difficulty: quiz.DifficultyConcept,
			Topic:         "单复数转换",
			Content:       "What are those? They are ____.",
			Options:       []string{"A. box", "B. boxs", "C. boxes", "D. boxing"},
			CorrectAnswer: "C",
			Explanation:   "以x结尾的名词变复数加es。",
		},
		{
			ID: "e4", Subject: quiz.SubjectEnglish, Difficulty: quiz.DifficultyConcept,
			Topic:         "日常用语",
			Content:       "—How do you spell \"pen\"? —____.",
			Options:       []string{"A. It is a pen", "B. P-E-N", "C. Yes, I can", "D. No, thanks"},
			CorrectAnswer: "B",
			Explanation:   "询问如何拼写，需要按字母顺序读出。",
		},
		{
			ID: "e5", Subject: quiz.SubjectEnglish, Difficulty: quiz.DifficultyMedium,
			Topic:         "介词搭配",
			Content:       "My birthday is ____ October 1st.",
			Options:       []string{"A. in", "B. on", "C. at", "D. to"},
			CorrectAnswer: "B",
			Explanation:   "在具体的某一天或具体日期的上午、下午用介词on。",
		},
	},
}

// BankSize returns the number of built-in questions for a subject. Math
// has no bank; its questions are synthesized.
func BankSize(subject quiz.Subject) int {
	return len(builtinBanks[subject])
}
