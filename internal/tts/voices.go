package tts

// Catalog returns the neural voices exposed to clients. The set mirrors the
// languages supported for story narration.
func Catalog() []Voice {
	return []Voice{
		{ID: "en-US-AriaNeural", Name: "Aria", Language: "en-US", Gender: "Female"},
		{ID: "en-US-AnaNeural", Name: "Ana", Language: "en-US", Gender: "Female", Child: true},
		{ID: "en-US-GuyNeural", Name: "Guy", Language: "en-US", Gender: "Male"},
		{ID: "en-GB-SoniaNeural", Name: "Sonia", Language: "en-GB", Gender: "Female"},
		{ID: "es-ES-ElviraNeural", Name: "Elvira", Language: "es-ES", Gender: "Female"},
		{ID: "es-MX-DaliaNeural", Name: "Dalia", Language: "es-MX", Gender: "Female", Child: true},
		{ID: "fr-FR-DeniseNeural", Name: "Denise", Language: "fr-FR", Gender: "Female"},
		{ID: "fr-FR-EloiseNeural", Name: "Eloise", Language: "fr-FR", Gender: "Female", Child: true},
		{ID: "de-DE-KatjaNeural", Name: "Katja", Language: "de-DE", Gender: "Female"},
		{ID: "de-DE-GiselaNeural", Name: "Gisela", Language: "de-DE", Gender: "Female", Child: true},
		{ID: "it-IT-ElsaNeural", Name: "Elsa", Language: "it-IT", Gender: "Female"},
		{ID: "pt-BR-FranciscaNeural", Name: "Francisca", Language: "pt-BR", Gender: "Female"},
		{ID: "zh-CN-XiaoxiaoNeural", Name: "Xiaoxiao", Language: "zh-CN", Gender: "Female"},
		{ID: "ja-JP-NanamiNeural", Name: "Nanami", Language: "ja-JP", Gender: "Female"},
		{ID: "ko-KR-SunHiNeural", Name: "SunHi", Language: "ko-KR", Gender: "Female"},
		{ID: "hi-IN-SwaraNeural", Name: "Swara", Language: "hi-IN", Gender: "Female"},
		{ID: "ar-SA-ZariyahNeural", Name: "Zariyah", Language: "ar-SA", Gender: "Female"},
		{ID: "ru-RU-SvetlanaNeural", Name: "Svetlana", Language: "ru-RU", Gender: "Female"},
	}
}
