// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

// User-facing error messages.
const (
	msgInvalidBody          = "בקשה לא תקינה"
	msgInvalidID            = "מזהה לא תקין"
	msgNotFound             = "לא נמצא"
	msgArticleNotFound      = "מאמר לא נמצא"
	msgServerError          = "שגיאת שרת"
	msgDuplicateSlug        = "כתובת (slug) זו כבר קיימת"
	msgInvalidReference     = "הקטגוריה או הנושא שנבחרו לא קיימים"
	msgInvalidStatus        = "סטטוס לא תקין"
	msgTitleRequired        = "כותרת נדרשת"
	msgTitleTopicRequired   = "כותרת ונושא לכתיבה נדרשים"
	msgInvalidWordRange     = "טווח מילים לא תקין"
	msgGenerateFailed       = "שגיאה ביצירת המאמר"
	msgTopicRequired        = "נושא נדרש"
	msgSuggestFailed        = "שגיאה בהצעת מקורות"
	msgCategoryNameRequired = "שם קטגוריה נדרש"
	msgTopicFieldsRequired  = "שם ומזהה קטגוריה נדרשים"
	msgNameRequired         = "שם נדרש"
	msgInvalidColor         = "צבע לא תקין"
	msgInvalidSetting       = "ערך הגדרה לא תקין"
	msgProviderUnavailable  = "ספק הבינה המלאכותית לא זמין"
	msgWPNotConfigured      = "חיבור וורדפרס לא מוגדר. הגדר WP_URL, WP_USERNAME, WP_APP_PASSWORD ב-.env.local"
	msgWPUploadFailed       = "שגיאה בהעלאה לוורדפרס"
	msgWPErrorPrefix        = "שגיאת וורדפרס: "
	msgAlreadyPublished     = "המאמר כבר הועלה לוורדפרס"
	msgPublishInProgress    = "העלאה לוורדפרס כבר מתבצעת עבור מאמר זה"
	msgWPWriteBackFailed    = "הטיוטה נוצרה בוורדפרס אך המאמר לא עודכן. אל תעלה שוב; עדכן ידנית לפי מזהה הפוסט"
	msgFieldTooLong         = "אחד השדות ארוך מדי"
)
