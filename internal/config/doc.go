// Package config loads the gallery configuration file.
//
// The file is JSON (config.json by default) or YAML with the same keys:
//
//	{
//	  "input": "photos",
//	  "output": "html",
//	  "title": "Image Gallery",
//	  "footer": "Gallery",
//	  "footer-link": "#",
//	  "title-font": "brand",
//	  "footer-font": "",
//	  "global-font": "",
//	  "start-date": "2020-03-01",
//	  "start-year": 2020,
//	  "language": "zh-CN",
//	  "galleries": {
//	    "01-Trip": {"cover": "/covers/trip.jpg", "description": "**Summer** 2023"}
//	  }
//	}
//
// Only input and output are required. Load returns an immutable Settings
// value; callers pass it to each build component.
package config
