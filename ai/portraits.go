package ai

// ChefPortraits backs chef profiles that arrive without an image.
var ChefPortraits = []string{
	"https://images.unsplash.com/photo-1583394838336-acd977736f90?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1577219491135-ce391730fb2c?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1595273670150-bd0c3c392e46?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1625631980396-f5979bc6bc6a?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1605851867184-24e05ee20211?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1566554273541-37a9ca77b91f?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1581299894007-aaa50297cf16?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1559339352-11d035aa65de?auto=format&fit=crop&w=800&q=80",
}
