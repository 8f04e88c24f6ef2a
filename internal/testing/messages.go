package testing

// Messages returns a complete message bundle for locale as a nested map, the
// same shape as src/locales/{locale}.json. Unknown locales get English text
// prefixed with the locale code so pages stay distinguishable.
func Messages(locale string) map[string]any {
	if locale == "zh" {
		return zhMessages()
	}
	m := enMessages()
	if locale != "en" {
		m["brand"] = map[string]any{"title": locale + " Light Notes"}
	}
	return m
}

func enMessages() map[string]any {
	return map[string]any{
		"navigation": map[string]any{"gallery": "Gallery", "about": "About", "contact": "Contact"},
		"brand":      map[string]any{"title": "Light Notes"},
		"footer":     map[string]any{"copy": "© Light Notes. All rights reserved."},
		"gallery": map[string]any{
			"title":    "Selected Works",
			"subtitle": "Quiet moments & distant places",
			"years":    "Years",
			"allYears": "All",
		},
		"detail": map[string]any{
			"date": "Date", "camera": "Camera", "lens": "Lens", "focalLength": "Focal length",
			"aperture": "Aperture", "shutter": "Shutter", "back": "Back to gallery",
		},
		"about": map[string]any{
			"title": "About", "subtitle": "Behind the lens",
			"storyTitle": "Story", "story1": "I started with film.", "story2": "I still carry one camera.",
			"highlightTitle": "Highlights",
			"highlight1":     "Exhibited in Shanghai", "highlight2": "Published in print", "highlight3": "Workshops",
		},
		"contact": map[string]any{
			"title": "Contact", "subtitle": "Let's talk",
			"infoTitle": "Details", "infoDescription": "Commissions and prints.",
			"emailLabel": "Email", "phoneLabel": "Phone",
			"locationLabel": "Based in", "locationValue": "Hangzhou",
			"form": map[string]any{"name": "Name", "email": "Email", "message": "Message", "submit": "Send"},
		},
	}
}

func zhMessages() map[string]any {
	return map[string]any{
		"navigation": map[string]any{"gallery": "作品", "about": "关于", "contact": "联系"},
		"brand":      map[string]any{"title": "光影笔记"},
		"footer":     map[string]any{"copy": "© 光影笔记 版权所有"},
		"gallery": map[string]any{
			"title":    "作品精选",
			"subtitle": "安静的瞬间与远方",
			"years":    "年份",
			"allYears": "全部",
		},
		"detail": map[string]any{
			"date": "日期", "camera": "相机", "lens": "镜头", "focalLength": "焦距",
			"aperture": "光圈", "shutter": "快门", "back": "返回作品",
		},
		"about": map[string]any{
			"title": "关于", "subtitle": "镜头背后",
			"storyTitle": "故事", "story1": "从胶片开始。", "story2": "至今只带一台相机。",
			"highlightTitle": "经历",
			"highlight1":     "上海展览", "highlight2": "纸媒发表", "highlight3": "摄影工作坊",
		},
		"contact": map[string]any{
			"title": "联系", "subtitle": "期待交流",
			"infoTitle": "联系方式", "infoDescription": "接受委托与印刷订购。",
			"emailLabel": "邮箱", "phoneLabel": "电话",
			"locationLabel": "所在地", "locationValue": "杭州",
			"form": map[string]any{"name": "姓名", "email": "邮箱", "message": "留言", "submit": "发送"},
		},
	}
}
